package service

import (
	"context"
	"io"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/noah-isme/campus-go-api/internal/dto"
	"github.com/noah-isme/campus-go-api/internal/models"
	"github.com/noah-isme/campus-go-api/internal/repository"
)

func newCatalogFixture(t *testing.T, name string, cache *redis.Client) (CatalogService, *gorm.DB, models.Programme) {
	t.Helper()

	db := openTestDB(t, name)
	programme := seedProgrammeWithStudents(t, db, 0)

	svc := NewCatalogService(
		repository.NewCatalogRepository(db),
		cache,
		time.Minute,
		validator.New(validator.WithRequiredStructEnabled()),
		zerolog.New(io.Discard),
	)

	return svc, db, programme
}

func TestOptionsCascadeResetsDescendants(t *testing.T) {
	svc, db, programme := newCatalogFixture(t, "cat_cascade", nil)
	ctx := context.Background()

	var department models.Department
	require.NoError(t, db.First(&department).Error)
	var faculty models.Faculty
	require.NoError(t, db.First(&faculty).Error)

	level := 200
	semester := "First"
	fullSelection := models.CatalogSelection{
		FacultyID:    &faculty.ID,
		DepartmentID: &department.ID,
		ProgrammeID:  &programme.ID,
		Level:        &level,
		Semester:     &semester,
	}

	// changing the faculty wipes everything below it
	response, err := svc.Options(ctx, dto.CascadeOptionsRequest{
		Changed:   dto.CascadeFieldFaculty,
		Selection: fullSelection,
	})
	require.NoError(t, err)
	require.Equal(t, &faculty.ID, response.Selection.FacultyID)
	require.Nil(t, response.Selection.DepartmentID)
	require.Nil(t, response.Selection.ProgrammeID)
	require.Nil(t, response.Selection.Level)
	require.Nil(t, response.Selection.Semester)
	require.Len(t, response.Departments, 1)
	require.Empty(t, response.Programmes)
	require.Empty(t, response.Levels)
	require.Empty(t, response.Semesters)

	// changing the level only clears the semester
	response, err = svc.Options(ctx, dto.CascadeOptionsRequest{
		Changed:   dto.CascadeFieldLevel,
		Selection: fullSelection,
	})
	require.NoError(t, err)
	require.Equal(t, &programme.ID, response.Selection.ProgrammeID)
	require.Nil(t, response.Selection.Semester)
	require.Equal(t, []int{100, 200, 300, 400}, response.Levels)
	require.Equal(t, models.AllSemesters, response.Semesters)
}

func TestOptionsLevelsBoundByProgramme(t *testing.T) {
	svc, db, programme := newCatalogFixture(t, "cat_levels", nil)
	ctx := context.Background()

	require.NoError(t, db.Model(&models.Programme{}).Where("id = ?", programme.ID).Update("max_level", 500).Error)

	response, err := svc.Options(ctx, dto.CascadeOptionsRequest{
		Changed: dto.CascadeFieldProgramme,
		Selection: models.CatalogSelection{
			ProgrammeID: &programme.ID,
		},
	})
	require.NoError(t, err)
	require.Equal(t, models.AllLevels, response.Levels)
}

func TestTreeUsesCache(t *testing.T) {
	mini, err := miniredis.Run()
	require.NoError(t, err)
	defer mini.Close()

	cache := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	svc, db, _ := newCatalogFixture(t, "cat_cache", cache)
	ctx := context.Background()

	first, err := svc.Tree(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)
	require.Equal(t, "Science", first[0].Name)

	// the database may change but the cached tree is served until expiry
	require.NoError(t, db.Model(&models.Faculty{}).Where("name = ?", "Science").Update("name", "Renamed").Error)

	second, err := svc.Tree(ctx)
	require.NoError(t, err)
	require.Equal(t, first, second)

	mini.FastForward(2 * time.Minute)

	third, err := svc.Tree(ctx)
	require.NoError(t, err)
	require.Equal(t, "Renamed", third[0].Name)
}
