package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	apperrors "github.com/dongbac/feedback-backend/errors"
	"github.com/dongbac/feedback-backend/types"
	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
)

// Allowed upload extensions, cross-checked against the sniffed MIME type.
var imageAllowedExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

var imageAllowedMimes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/gif":  true,
	"image/webp": true,
}

// FeedbackHandler handles feedback submission endpoints.
type FeedbackHandler struct {
	submitter FeedbackSubmitter
	maxFiles  int
	maxBytes  int64
}

// NewFeedbackHandler creates a new FeedbackHandler.
func NewFeedbackHandler(submitter FeedbackSubmitter, maxFiles int, maxBytes int64) *FeedbackHandler {
	return &FeedbackHandler{
		submitter: submitter,
		maxFiles:  maxFiles,
		maxBytes:  maxBytes,
	}
}

// SubmitFeedback accepts a multipart feedback submission.
// POST /v1/feedback
// Form fields: name, category, priority, title, detail; files under "images".
func (h *FeedbackHandler) SubmitFeedback(c *gin.Context) {
	// Enforce max body size: per-file cap times the file budget, plus
	// headroom for the text fields and multipart framing.
	limit := h.maxBytes*int64(h.maxFiles) + 1024*1024
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)

	if err := c.Request.ParseMultipartForm(h.maxBytes); err != nil {
		_ = c.Error(apperrors.ValidationFailed("invalid_form", "không đọc được dữ liệu biểu mẫu"))
		return
	}

	submission := &types.FeedbackSubmission{
		Name:     c.PostForm("name"),
		Category: c.PostForm("category"),
		Priority: c.PostForm("priority"),
		Title:    c.PostForm("title"),
		Detail:   c.PostForm("detail"),
	}

	images, err := h.collectImages(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	result, err := h.submitter.Submit(c.Request.Context(), submission, images)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, types.StatusResponse{
		Status:  "Cảm ơn bạn! Phản hồi đã được gửi thành công.",
		Warning: result.Warning,
	})
}

// collectImages reads and validates every uploaded file under the
// "images" field. All files are validated before any are accepted.
func (h *FeedbackHandler) collectImages(c *gin.Context) ([]types.UploadedImage, error) {
	form := c.Request.MultipartForm
	if form == nil {
		return nil, nil
	}
	headers := form.File["images"]
	if len(headers) == 0 {
		return nil, nil
	}
	if len(headers) > h.maxFiles {
		return nil, apperrors.ValidationFailed("too_many_files",
			fmt.Sprintf("tối đa %d ảnh cho mỗi phản hồi", h.maxFiles))
	}

	images := make([]types.UploadedImage, 0, len(headers))
	for _, fh := range headers {
		if fh.Size > h.maxBytes {
			return nil, apperrors.ValidationFailed("file_too_large",
				fmt.Sprintf("ảnh %q vượt quá giới hạn %d byte", fh.Filename, h.maxBytes))
		}

		ext := strings.ToLower(filepath.Ext(fh.Filename))
		if !imageAllowedExts[ext] {
			return nil, apperrors.ValidationFailed("invalid_file_type",
				fmt.Sprintf("ảnh %q không thuộc định dạng cho phép (png, jpg, jpeg, gif, webp)", fh.Filename))
		}

		data, err := readImage(fh)
		if err != nil {
			return nil, err
		}

		detected := mimetype.Detect(data).String()
		if !imageAllowedMimes[detected] {
			return nil, apperrors.ValidationFailed("invalid_mime_type",
				fmt.Sprintf("nội dung ảnh %q không hợp lệ (%s)", fh.Filename, detected))
		}

		images = append(images, types.UploadedImage{Filename: fh.Filename, Data: data})
	}
	return images, nil
}

func readImage(fh *multipart.FileHeader) ([]byte, error) {
	file, err := fh.Open()
	if err != nil {
		return nil, apperrors.ValidationFailed("invalid_file", "không mở được tệp tải lên")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}
	return data, nil
}
