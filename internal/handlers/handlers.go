package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/example/deepshield/internal/detector"
	"github.com/example/deepshield/internal/logging"
)

// MaxUploadSize caps image uploads at 5 MiB.
const MaxUploadSize = detector.MaxImageBytes

// Version reported by the service descriptor.
const Version = "2.0.0"

const (
	msgTextTooShort    = "Text must be at least 50 characters long for accurate analysis"
	msgInvalidFileType = "Invalid file type. Please upload an image (JPG, PNG, WebP)"
	msgFileTooLarge    = "File size exceeds 5MB limit"
)

// TextAnalyzer scores free text.
type TextAnalyzer interface {
	Analyze(text string) (detector.Result, error)
}

// ImageAnalyzer scores uploaded image bytes.
type ImageAnalyzer interface {
	Analyze(data []byte) (detector.Result, error)
}

type textRequest struct {
	Text string `json:"text"`
}

// CORSMiddleware permits all origins, methods and headers without
// credentials.
func CORSMiddleware() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"*"},
		AllowCredentials: false,
	})
}

// RegisterRoutes wires the HTTP handlers to the Gin router.
func RegisterRoutes(router *gin.Engine, text TextAnalyzer, img ImageAnalyzer, logger *zap.Logger) {
	logger = logger.Named("handlers")

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "DeepShield API is running - Pattern-based Detection",
			"version": Version,
			"endpoints": gin.H{
				"text":  "/analyze/text",
				"image": "/analyze/image",
			},
			"method": "heuristic_analysis",
			"status": "healthy",
		})
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "method": "pattern-based"})
	})

	router.POST("/analyze/text", func(c *gin.Context) {
		var req textRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request body")
			return
		}

		result, err := text.Analyze(req.Text)
		if err != nil {
			if errors.Is(err, detector.ErrTextTooShort) {
				badRequest(c, msgTextTooShort)
				return
			}
			internalError(c, logger, "handlers.analyze_text", err)
			return
		}
		c.JSON(http.StatusOK, result)
	})

	router.POST("/analyze/image", func(c *gin.Context) {
		file, err := c.FormFile("file")
		if err != nil {
			badRequest(c, "Image file is required")
			return
		}

		// Declared type is checked before any decode attempt.
		if !strings.HasPrefix(file.Header.Get("Content-Type"), "image/") {
			badRequest(c, msgInvalidFileType)
			return
		}
		if file.Size > MaxUploadSize {
			badRequest(c, msgFileTooLarge)
			return
		}

		src, err := file.Open()
		if err != nil {
			badRequest(c, "Unable to open uploaded file")
			return
		}
		defer src.Close()

		data, err := io.ReadAll(src)
		if err != nil {
			internalError(c, logger, "handlers.read_upload", err)
			return
		}
		if len(data) > MaxUploadSize {
			badRequest(c, msgFileTooLarge)
			return
		}

		result, err := img.Analyze(data)
		if err != nil {
			var decodeErr *detector.DecodeError
			if errors.As(err, &decodeErr) {
				badRequest(c, "Invalid image file: "+decodeErr.Unwrap().Error())
				return
			}
			internalError(c, logger, "handlers.analyze_image", err)
			return
		}
		c.JSON(http.StatusOK, result)
	})
}

func badRequest(c *gin.Context, detail string) {
	c.JSON(http.StatusBadRequest, gin.H{"detail": detail})
}

func internalError(c *gin.Context, logger *zap.Logger, operation string, err error) {
	requestID := c.GetString(logging.RequestIDKey)
	wrapped := logging.NewOperationError(operation, requestID, err)
	logging.WithRequest(logger, requestID).Error("request failed", zap.Error(wrapped))
	c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
}
