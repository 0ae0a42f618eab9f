package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"smartedu_backend/internal/model"
	"smartedu_backend/internal/repository"
	"smartedu_backend/internal/util"

	"go.uber.org/zap"
)

type ContentService struct {
	ContentRepo *repository.ContentRepository
	Storage     *StorageService
	Logger      *zap.Logger
}

func NewContentService(contentRepo *repository.ContentRepository, storage *StorageService, logger *zap.Logger) *ContentService {
	return &ContentService{ContentRepo: contentRepo, Storage: storage, Logger: logger}
}

type UploadContentRequest struct {
	Title       string
	Description string
	Subject     string
	Class       string
}

func isVideo(contentType string) bool {
	return strings.HasPrefix(contentType, "video/")
}

// UploadContent stages the file locally, probes videos for their metadata,
// then hands the file to the configured storage provider.
func (s *ContentService) UploadContent(ctx context.Context, claims *util.Claims, req *UploadContentRequest, header *multipart.FileHeader) (*model.ContentItem, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, util.NewValidationError("title")
	}
	if header == nil {
		return nil, util.NewValidationError("file")
	}

	src, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	tmp, err := os.CreateTemp("", "upload-*"+filepath.Ext(header.Filename))
	if err != nil {
		return nil, err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		return nil, err
	}
	tmp.Close()

	contentType := header.Header.Get("Content-Type")

	item := &model.ContentItem{
		SchoolID:    claims.SchoolID,
		UploadedBy:  claims.UserID,
		Title:       req.Title,
		Description: req.Description,
		Subject:     req.Subject,
		Class:       req.Class,
		FileName:    header.Filename,
		FileSize:    header.Size,
		ContentType: contentType,
	}

	if isVideo(contentType) {
		if info, err := util.GetVideoInfo(tmpPath); err == nil {
			item.Duration = info.Duration
			item.Width = info.Width
			item.Height = info.Height
		} else {
			s.Logger.Warn("video probe failed", zap.String("file", header.Filename), zap.Error(err))
		}
	}

	objectName := fmt.Sprintf("content/%s/%s%s", claims.SchoolID, model.GenerateUUID(), filepath.Ext(header.Filename))
	url, err := s.Storage.UploadFile(ctx, objectName, tmpPath, contentType)
	if err != nil {
		return nil, err
	}
	item.URL = url

	if err := s.ContentRepo.Create(item); err != nil {
		return nil, err
	}

	s.Logger.Info("content uploaded",
		zap.String("content_id", item.ID),
		zap.String("file", header.Filename),
		zap.Int64("size", header.Size))

	return item, nil
}

func (s *ContentService) ListContent(claims *util.Claims, subject, class string, page, limit int) ([]model.ContentItem, int64, error) {
	return s.ContentRepo.List(claims.SchoolID, subject, class, page, limit)
}

func (s *ContentService) LikeContent(claims *util.Claims, id string) (*model.ContentItem, error) {
	affected, err := s.ContentRepo.IncrementLikes(id, claims.SchoolID)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, util.ErrNotFound
	}
	return s.ContentRepo.FindByID(id, claims.SchoolID)
}

func (s *ContentService) DeleteContent(ctx context.Context, claims *util.Claims, id string) error {
	item, err := s.ContentRepo.FindByID(id, claims.SchoolID)
	if err != nil {
		return util.ErrNotFound
	}

	affected, err := s.ContentRepo.Delete(id, claims.SchoolID, claims.UserID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return util.ErrNotFound
	}

	// The DB row is authoritative; a stranded object is only logged.
	if item.URL != "" {
		if err := s.Storage.Delete(ctx, strings.TrimPrefix(item.URL, "/uploads/")); err != nil {
			s.Logger.Warn("storage object delete failed", zap.String("url", item.URL), zap.Error(err))
		}
	}

	return nil
}
