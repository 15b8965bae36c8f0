package usecase

import (
	"app/internal/domain/model"
	"app/internal/repository"
	"context"
	"errors"
	"strings"
)

type CourseUsecase struct {
	courses  repository.CourseRepository
	lessons  repository.LessonRepository
	concepts repository.ConceptRepository
}

func NewCourseUsecase(
	courses repository.CourseRepository,
	lessons repository.LessonRepository,
	concepts repository.ConceptRepository,
) *CourseUsecase {
	return &CourseUsecase{courses: courses, lessons: lessons, concepts: concepts}
}

type CourseInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Published   bool   `json:"published"`
}

// Listは一般向けには公開済みのみ、instructor/adminには全件
func (u *CourseUsecase) List(ctx context.Context, includeUnpublished bool) ([]model.Course, error) {
	courses, err := u.courses.List(ctx, !includeUnpublished)
	if err != nil {
		return nil, mapPersistError(err)
	}
	return courses, nil
}

func (u *CourseUsecase) Get(ctx context.Context, id int64, includeUnpublished bool) (*model.Course, error) {
	course, err := u.courses.FindByID(ctx, id)
	if err != nil {
		return nil, mapPersistError(err)
	}
	if course == nil {
		return nil, ErrNotFound
	}
	//未公開は作成側だけが見られる
	if !course.Published && !includeUnpublished {
		return nil, ErrNotFound
	}
	return course, nil
}

func (u *CourseUsecase) Create(ctx context.Context, instructorID int64, in CourseInput) (*model.Course, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, ErrValidation
	}

	course := &model.Course{
		Title:        in.Title,
		Description:  in.Description,
		Category:     in.Category,
		InstructorID: instructorID,
		Published:    in.Published,
	}

	if err := u.courses.Create(ctx, course); err != nil {
		return nil, mapPersistError(err)
	}
	return course, nil
}

func (u *CourseUsecase) Update(ctx context.Context, id int64, in CourseInput) (*model.Course, error) {
	course, err := u.courses.FindByID(ctx, id)
	if err != nil {
		return nil, mapPersistError(err)
	}
	if course == nil {
		return nil, ErrNotFound
	}

	if strings.TrimSpace(in.Title) == "" {
		return nil, ErrValidation
	}

	course.Title = in.Title
	course.Description = in.Description
	course.Category = in.Category
	course.Published = in.Published

	if err := u.courses.Update(ctx, course); err != nil {
		return nil, mapPersistError(err)
	}
	return course, nil
}

func (u *CourseUsecase) Delete(ctx context.Context, id int64) error {
	if err := u.courses.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return ErrNotFound
		}
		return mapPersistError(err)
	}
	return nil
}

type LessonInput struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Position int    `json:"position"`
}

func (u *CourseUsecase) AddLesson(ctx context.Context, courseID int64, in LessonInput) (*model.Lesson, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, ErrValidation
	}

	course, err := u.courses.FindByID(ctx, courseID)
	if err != nil {
		return nil, mapPersistError(err)
	}
	if course == nil {
		return nil, ErrNotFound
	}

	lesson := &model.Lesson{
		CourseID: courseID,
		Title:    in.Title,
		Content:  in.Content,
		Position: in.Position,
	}

	if err := u.lessons.Create(ctx, lesson); err != nil {
		return nil, mapPersistError(err)
	}
	return lesson, nil
}

func (u *CourseUsecase) ListLessons(ctx context.Context, courseID int64) ([]model.Lesson, error) {
	lessons, err := u.lessons.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, mapPersistError(err)
	}
	return lessons, nil
}

func (u *CourseUsecase) UpdateLesson(ctx context.Context, lessonID int64, in LessonInput) (*model.Lesson, error) {
	lesson, err := u.lessons.FindByID(ctx, lessonID)
	if err != nil {
		return nil, mapPersistError(err)
	}
	if lesson == nil {
		return nil, ErrNotFound
	}

	if strings.TrimSpace(in.Title) == "" {
		return nil, ErrValidation
	}

	lesson.Title = in.Title
	lesson.Content = in.Content
	lesson.Position = in.Position

	if err := u.lessons.Update(ctx, lesson); err != nil {
		return nil, mapPersistError(err)
	}
	return lesson, nil
}

func (u *CourseUsecase) DeleteLesson(ctx context.Context, lessonID int64) error {
	if err := u.lessons.Delete(ctx, lessonID); err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return ErrNotFound
		}
		return mapPersistError(err)
	}
	return nil
}

type ConceptInput struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

func (u *CourseUsecase) AddConcept(ctx context.Context, lessonID int64, in ConceptInput) (*model.Concept, error) {
	if strings.TrimSpace(in.Term) == "" {
		return nil, ErrValidation
	}

	lesson, err := u.lessons.FindByID(ctx, lessonID)
	if err != nil {
		return nil, mapPersistError(err)
	}
	if lesson == nil {
		return nil, ErrNotFound
	}

	concept := &model.Concept{
		LessonID:   lessonID,
		Term:       in.Term,
		Definition: in.Definition,
	}

	if err := u.concepts.Create(ctx, concept); err != nil {
		return nil, mapPersistError(err)
	}
	return concept, nil
}

func (u *CourseUsecase) DeleteConcept(ctx context.Context, conceptID int64) error {
	if err := u.concepts.Delete(ctx, conceptID); err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return ErrNotFound
		}
		return mapPersistError(err)
	}
	return nil
}
