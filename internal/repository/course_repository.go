package repository

import (
	"context"

	"gorm.io/gorm"

	"alumnidir/internal/model"
)

// CourseRepository defines course list persistence operations.
type CourseRepository interface {
	List(ctx context.Context) ([]string, error)
	// Replace swaps the whole list. Callers run it inside a transaction.
	Replace(ctx context.Context, names []string) error
	Count(ctx context.Context) (int64, error)
}

type courseRepository struct {
	db *gorm.DB
}

// NewCourseRepository creates a new course repository.
func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

// List returns course names in list order.
func (r *courseRepository) List(ctx context.Context) ([]string, error) {
	var courses []model.Course
	if err := r.db.WithContext(ctx).Order("position ASC").Find(&courses).Error; err != nil {
		return nil, err
	}
	names := make([]string, 0, len(courses))
	for _, c := range courses {
		names = append(names, c.Name)
	}
	return names, nil
}

// Replace deletes every course and inserts names with their positions.
func (r *courseRepository) Replace(ctx context.Context, names []string) error {
	db := r.db.WithContext(ctx)
	if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Course{}).Error; err != nil {
		return err
	}
	if len(names) == 0 {
		return nil
	}
	courses := make([]model.Course, 0, len(names))
	for i, name := range names {
		courses = append(courses, model.Course{Name: name, Position: i})
	}
	return db.CreateInBatches(courses, 100).Error
}

// Count returns the number of configured courses.
func (r *courseRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Course{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
