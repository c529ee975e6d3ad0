package v1

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // Register PNG decoder
	"net/http"
	"time"

	"go-dogwalking-backend/config"
	"go-dogwalking-backend/internal/delivery/http/middleware"
	"go-dogwalking-backend/internal/delivery/http/response"
	"go-dogwalking-backend/pkg/apperror"
	"go-dogwalking-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

const (
	maxAvatarUploadBytes = 5 << 20 // 5 MiB
	maxAvatarEdgePx      = 512
	avatarJpegQuality    = 80
	avatarBucket         = "avatars"
)

type UploadHandler struct {
	config *config.Config
}

func NewUploadHandler(r *gin.RouterGroup, cfg *config.Config) {
	handler := &UploadHandler{config: cfg}
	r.POST("/upload", middleware.RateLimitMiddleware(middleware.UploadRateLimitConfig(cfg)), handler.UploadAvatar)
}

// UploadAvatar godoc
// @Summary      Upload an avatar image
// @Description  Accepts a JPEG or PNG, downscales it server-side and stores it in Supabase Storage. Returns the public URL.
// @Tags         upload
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Image to upload"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Router       /upload [post]
// @Security     BearerAuth
func (h *UploadHandler) UploadAvatar(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.Error(apperror.BadRequest("No file uploaded"))
		return
	}
	if fileHeader.Size > maxAvatarUploadBytes {
		c.Error(apperror.BadRequest("Image must be smaller than 5 MB"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}
	defer file.Close()

	src, _, err := image.Decode(file)
	if err != nil {
		c.Error(apperror.BadRequest("File must be a JPEG or PNG image"))
		return
	}

	compressed, err := downscaleJpeg(src)
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}

	objectName := fmt.Sprintf("%s.jpg", uuid.NewString())
	publicURL, err := h.storeAvatar(c, objectName, compressed)
	if err != nil {
		logger.Log.Error("Avatar upload to storage failed", "error", err)
		c.Error(apperror.New(http.StatusBadGateway, "Storage service unavailable", err))
		return
	}

	response.Success(c, http.StatusOK, "Avatar uploaded", gin.H{"url": publicURL})
}

// downscaleJpeg shrinks the image so its longest edge is at most 512px and
// re-encodes it as JPEG. Avatars never need more than that.
func downscaleJpeg(src image.Image) ([]byte, error) {
	bounds := src.Bounds()
	w, height := bounds.Dx(), bounds.Dy()

	if w > maxAvatarEdgePx || height > maxAvatarEdgePx {
		scale := float64(maxAvatarEdgePx) / float64(max(w, height))
		w = int(float64(w) * scale)
		height = int(float64(height) * scale)

		dst := image.NewRGBA(image.Rect(0, 0, w, height))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
		src = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, src, &jpeg.Options{Quality: avatarJpegQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// storeAvatar uploads the encoded image to Supabase Storage and returns the
// public URL.
func (h *UploadHandler) storeAvatar(c *gin.Context, objectName string, data []byte) (string, error) {
	uploadURL := fmt.Sprintf("%s/storage/v1/object/%s/%s", h.config.SupabaseUrl, avatarBucket, objectName)

	req, err := http.NewRequestWithContext(c.Request.Context(), "POST", uploadURL, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+h.config.SupabaseServiceKey)
	req.Header.Set("Content-Type", "image/jpeg")

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("storage upload failed with status %d", resp.StatusCode)
	}

	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", h.config.SupabaseUrl, avatarBucket, objectName), nil
}
