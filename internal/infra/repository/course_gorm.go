package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type courseGormRepository struct {
	db *gorm.DB
}

func NewCourseGormRepository(db *gorm.DB) repo.CourseRepository {
	return &courseGormRepository{db: db}
}

func (r *courseGormRepository) Create(ctx context.Context, course *model.Course) error {
	if err := r.db.WithContext(ctx).Create(course).Error; err != nil {
		return mapWriteError(err)
	}
	return nil
}

// lessonとconceptも一緒に返す
func (r *courseGormRepository) FindByID(ctx context.Context, id int64) (*model.Course, error) {
	var c model.Course

	err := r.db.WithContext(ctx).
		Preload("Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Lessons.Concepts").
		Where("id = ?", id).
		First(&c).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, mapWriteError(err)
	}

	return &c, nil
}

func (r *courseGormRepository) List(ctx context.Context, publishedOnly bool) ([]model.Course, error) {
	var courses []model.Course

	q := r.db.WithContext(ctx).Order("created_at DESC")
	if publishedOnly {
		q = q.Where("published = ?", true)
	}

	if err := q.Find(&courses).Error; err != nil {
		return nil, mapWriteError(err)
	}
	return courses, nil
}

func (r *courseGormRepository) Update(ctx context.Context, course *model.Course) error {
	if err := r.db.WithContext(ctx).Save(course).Error; err != nil {
		return mapWriteError(err)
	}
	return nil
}

func (r *courseGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.Course{})

	if res.Error != nil {
		return mapWriteError(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrRecordNotFound
	}
	return nil
}
