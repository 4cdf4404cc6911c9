package services

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/lingo-leap/lingo_api/dto"
	"github.com/lingo-leap/lingo_api/model"
	"github.com/lingo-leap/lingo_api/services/repositories"
	"github.com/lingo-leap/lingo_api/shared"
	log "github.com/sirupsen/logrus"
)

type MediaService struct {
	context.DefaultService

	sqlSvc   *PostgresService
	minioSvc *MinIOService

	contentRepo *repositories.ContentRepository

	baseURL string
}

const MEDIA_SVC = "media_svc"

func (svc MediaService) Id() string {
	return MEDIA_SVC
}

func (svc *MediaService) Configure(ctx *context.Context) error {
	svc.baseURL = os.Getenv("BASE_URL")
	if svc.baseURL == "" {
		svc.baseURL = "http://localhost:8000"
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *MediaService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.minioSvc = svc.Service(MINIO_SVC).(*MinIOService)

	svc.contentRepo = repositories.NewContentRepository(svc.sqlSvc.Db())

	return nil
}

// ==================== MEDIA UPLOAD METHODS ====================

func (svc *MediaService) UploadLessonAudio(lessonID string, file *multipart.FileHeader) (*dto.MediaUploadResponse, error) {
	if !svc.isValidAudioFile(file.Filename) {
		return nil, shared.NewBadRequestError(nil, "Invalid audio file format. Supported: MP3, WAV, AAC, OGG")
	}

	if file.Size > 20*1024*1024 {
		return nil, shared.NewBadRequestError(nil, "Audio file too large. Maximum size: 20MB")
	}

	return svc.uploadFile(file, "audio", lessonID)
}

func (svc *MediaService) UploadThumbnail(lessonID string, file *multipart.FileHeader) (*dto.MediaUploadResponse, error) {
	if !svc.isValidImageFile(file.Filename) {
		return nil, shared.NewBadRequestError(nil, "Invalid image file format. Supported: JPG, PNG, WEBP")
	}

	if file.Size > 2*1024*1024 {
		return nil, shared.NewBadRequestError(nil, "Thumbnail file too large. Maximum size: 2MB")
	}

	return svc.uploadFile(file, "thumbnail", lessonID)
}

func (svc *MediaService) uploadFile(file *multipart.FileHeader, kind, lessonID string) (*dto.MediaUploadResponse, error) {
	if _, err := svc.contentRepo.GetLesson(lessonID); err != nil {
		return nil, shared.NewNotFoundError(err, "Lesson not found")
	}

	ext := filepath.Ext(file.Filename)
	fileName := fmt.Sprintf("%s_%s_%d%s", lessonID, kind, time.Now().Unix(), ext)

	var subDir string
	switch kind {
	case "audio":
		subDir = "audio"
	case "thumbnail":
		subDir = "thumbnails"
	default:
		subDir = "misc"
	}

	objectName := fmt.Sprintf("%s/%s", subDir, fileName)

	src, err := file.Open()
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to open uploaded file")
	}
	defer src.Close()

	uploadInfo, err := svc.minioSvc.UploadFile(objectName, src, file.Size, file.Header.Get("Content-Type"))
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to upload file to storage")
	}

	fileURL, err := svc.minioSvc.GetFileURL(objectName, 24*time.Hour)
	if err != nil {
		log.Printf("Failed to generate presigned URL: %v", err)
		fileURL = fmt.Sprintf("%s/%s/%s", svc.baseURL, svc.minioSvc.GetBucketName(), objectName)
	}

	asset := &model.MediaAsset{
		LessonID:    lessonID,
		Kind:        kind,
		ObjectKey:   objectName,
		URL:         fileURL,
		SizeBytes:   file.Size,
		ContentType: file.Header.Get("Content-Type"),
	}

	if err := svc.contentRepo.CreateMediaAsset(asset); err != nil {
		// Clean up the orphaned object if the record cannot be written.
		_ = svc.minioSvc.DeleteFile(objectName)
		return nil, err
	}

	if err := svc.linkToLesson(lessonID, kind, fileURL); err != nil {
		log.Printf("Failed to link media to lesson %s: %v", lessonID, err)
	}

	log.Printf("Successfully uploaded file %s to MinIO: %s", fileName, uploadInfo.Key)

	return &dto.MediaUploadResponse{
		AssetID:     asset.ID,
		LessonID:    lessonID,
		Kind:        kind,
		URL:         fileURL,
		SizeBytes:   file.Size,
		ContentType: asset.ContentType,
	}, nil
}

func (svc *MediaService) linkToLesson(lessonID, kind, url string) error {
	switch kind {
	case "audio":
		return svc.contentRepo.UpdateLessonMedia(lessonID, map[string]interface{}{"audio_url": url})
	case "thumbnail":
		return svc.contentRepo.UpdateLessonMedia(lessonID, map[string]interface{}{"thumbnail_url": url})
	}
	return nil
}

// ==================== MEDIA RETRIEVAL METHODS ====================

func (svc *MediaService) GetLessonMedia(lessonID string) ([]dto.MediaUploadResponse, error) {
	assets, err := svc.contentRepo.GetLessonMediaAssets(lessonID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.MediaUploadResponse, len(assets))
	for i, asset := range assets {
		responses[i] = dto.MediaUploadResponse{
			AssetID:     asset.ID,
			LessonID:    asset.LessonID,
			Kind:        asset.Kind,
			URL:         asset.URL,
			SizeBytes:   asset.SizeBytes,
			ContentType: asset.ContentType,
		}
	}
	return responses, nil
}

// ==================== FILE VALIDATION METHODS ====================

func (svc *MediaService) isValidAudioFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	validExts := []string{".mp3", ".wav", ".aac", ".m4a", ".ogg"}

	for _, validExt := range validExts {
		if ext == validExt {
			return true
		}
	}
	return false
}

func (svc *MediaService) isValidImageFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	validExts := []string{".jpg", ".jpeg", ".png", ".webp"}

	for _, validExt := range validExts {
		if ext == validExt {
			return true
		}
	}
	return false
}

// ==================== CLEANUP METHODS ====================

func (svc *MediaService) DeleteMediaAsset(assetID string) error {
	asset, err := svc.contentRepo.GetMediaAsset(assetID)
	if err != nil {
		return shared.NewNotFoundError(err, "Media asset not found")
	}

	if err := svc.minioSvc.DeleteFile(asset.ObjectKey); err != nil {
		log.Printf("Failed to delete file from MinIO %s: %v", asset.ObjectKey, err)
	}

	return svc.contentRepo.DeleteMediaAsset(assetID)
}
