package repository

import (
	"app/internal/domain/model"
	"context"
)

type CourseRepository interface {
	Create(ctx context.Context, course *model.Course) error
	FindByID(ctx context.Context, id int64) (*model.Course, error)
	//publishedOnly=trueなら公開済みのみ
	List(ctx context.Context, publishedOnly bool) ([]model.Course, error)
	Update(ctx context.Context, course *model.Course) error
	Delete(ctx context.Context, id int64) error
}

type LessonRepository interface {
	Create(ctx context.Context, lesson *model.Lesson) error
	FindByID(ctx context.Context, id int64) (*model.Lesson, error)
	ListByCourse(ctx context.Context, courseID int64) ([]model.Lesson, error)
	Update(ctx context.Context, lesson *model.Lesson) error
	Delete(ctx context.Context, id int64) error
}

type ConceptRepository interface {
	Create(ctx context.Context, concept *model.Concept) error
	ListByLesson(ctx context.Context, lessonID int64) ([]model.Concept, error)
	Delete(ctx context.Context, id int64) error
}
