package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adewale-oss/timetable-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestCourseRepositoryListBySemester(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	lecturer := "lect-1"
	rows := sqlmock.NewRows([]string{"id", "code", "title", "level", "credit_hours", "lecturer_id", "department", "enrollment", "semester", "created_at", "updated_at"}).
		AddRow("course-1", "CSC301", "Compiler Construction", 300, 3, lecturer, "CSC", 120, 1, time.Now(), time.Now()).
		AddRow("course-2", "MTH101", "General Mathematics", 100, 2, nil, "MTH", 450, 1, time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("FROM courses WHERE semester = $1 ORDER BY code ASC")).
		WithArgs(1).
		WillReturnRows(rows)

	courses, err := repo.ListBySemester(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, "CSC301", courses[0].Code)
	require.NotNil(t, courses[0].LecturerID)
	assert.Equal(t, "lect-1", *courses[0].LecturerID)
	assert.Nil(t, courses[1].LecturerID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO courses")).
		WithArgs(sqlmock.AnyArg(), "CSC301", "Compiler Construction", 300, 3, nil, "CSC", 120, 1, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	course := &models.Course{
		Code:        "CSC301",
		Title:       "Compiler Construction",
		Level:       300,
		CreditHours: 3,
		Department:  "CSC",
		Enrollment:  120,
		Semester:    1,
	}
	err := repo.Create(context.Background(), course)
	require.NoError(t, err)
	assert.NotEmpty(t, course.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryListWithFilters(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	rows := sqlmock.NewRows([]string{"id", "code", "title", "level", "credit_hours", "lecturer_id", "department", "enrollment", "semester", "created_at", "updated_at"}).
		AddRow("course-1", "CSC301", "Compiler Construction", 300, 3, nil, "CSC", 120, 1, time.Now(), time.Now())
	mock.ExpectQuery("FROM courses WHERE 1=1 AND semester = \\$1 AND level = \\$2").
		WithArgs(1, 300).
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM courses WHERE 1=1")).
		WithArgs(1, 300).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	courses, total, err := repo.List(context.Background(), models.CourseFilter{Semester: 1, Level: 300})
	require.NoError(t, err)
	assert.Len(t, courses, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM courses WHERE id = $1")).
		WithArgs("course-1").
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Delete(context.Background(), "course-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
