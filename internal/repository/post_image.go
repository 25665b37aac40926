package repository

import (
	"context"

	"snsapp/internal/models"

	"gorm.io/gorm"
)

// PostImageRepository defines the interface for post image data operations.
type PostImageRepository interface {
	Create(tx *gorm.DB, image *models.PostImage) error
	// FirstImageByPostIDs resolves the first image (lowest sort index) for each
	// post id in one query. Posts without images are absent from the map.
	FirstImageByPostIDs(ctx context.Context, postIDs []uint) (map[uint]string, error)
}

type postImageRepository struct {
	db *gorm.DB
}

// NewPostImageRepository creates a new post image repository
func NewPostImageRepository(db *gorm.DB) PostImageRepository {
	return &postImageRepository{db: db}
}

func (r *postImageRepository) Create(tx *gorm.DB, image *models.PostImage) error {
	if err := tx.Create(image).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postImageRepository) FirstImageByPostIDs(ctx context.Context, postIDs []uint) (map[uint]string, error) {
	result := make(map[uint]string, len(postIDs))
	if len(postIDs) == 0 {
		return result, nil
	}

	var images []models.PostImage
	err := r.db.WithContext(ctx).
		Where("post_id IN ?", postIDs).
		Order("post_id ASC, sort_index ASC").
		Find(&images).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	// Rows arrive sorted by sort index, so the first one seen per post wins.
	for _, img := range images {
		if _, ok := result[img.PostID]; !ok && img.ImgURL != "" {
			result[img.PostID] = img.ImgURL
		}
	}
	return result, nil
}
