package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type lessonGormRepository struct {
	db *gorm.DB
}

func NewLessonGormRepository(db *gorm.DB) repo.LessonRepository {
	return &lessonGormRepository{db: db}
}

func (r *lessonGormRepository) Create(ctx context.Context, lesson *model.Lesson) error {
	if err := r.db.WithContext(ctx).Create(lesson).Error; err != nil {
		return mapWriteError(err)
	}
	return nil
}

func (r *lessonGormRepository) FindByID(ctx context.Context, id int64) (*model.Lesson, error) {
	var l model.Lesson

	err := r.db.WithContext(ctx).
		Preload("Concepts").
		Where("id = ?", id).
		First(&l).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, mapWriteError(err)
	}

	return &l, nil
}

func (r *lessonGormRepository) ListByCourse(ctx context.Context, courseID int64) ([]model.Lesson, error) {
	var lessons []model.Lesson

	err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("position ASC").
		Find(&lessons).Error

	if err != nil {
		return nil, mapWriteError(err)
	}
	return lessons, nil
}

func (r *lessonGormRepository) Update(ctx context.Context, lesson *model.Lesson) error {
	if err := r.db.WithContext(ctx).Save(lesson).Error; err != nil {
		return mapWriteError(err)
	}
	return nil
}

func (r *lessonGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.Lesson{})

	if res.Error != nil {
		return mapWriteError(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrRecordNotFound
	}
	return nil
}

type conceptGormRepository struct {
	db *gorm.DB
}

func NewConceptGormRepository(db *gorm.DB) repo.ConceptRepository {
	return &conceptGormRepository{db: db}
}

func (r *conceptGormRepository) Create(ctx context.Context, concept *model.Concept) error {
	if err := r.db.WithContext(ctx).Create(concept).Error; err != nil {
		return mapWriteError(err)
	}
	return nil
}

func (r *conceptGormRepository) ListByLesson(ctx context.Context, lessonID int64) ([]model.Concept, error) {
	var concepts []model.Concept

	err := r.db.WithContext(ctx).
		Where("lesson_id = ?", lessonID).
		Find(&concepts).Error

	if err != nil {
		return nil, mapWriteError(err)
	}
	return concepts, nil
}

func (r *conceptGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.Concept{})

	if res.Error != nil {
		return mapWriteError(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrRecordNotFound
	}
	return nil
}
