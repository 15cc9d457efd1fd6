package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/course-planner-api/internal/dto"
	"github.com/noah-isme/course-planner-api/internal/models"
	appErrors "github.com/noah-isme/course-planner-api/pkg/errors"
)

type personalStoreStub struct {
	saved []models.PersonalActivity
	err   error
}

func (s *personalStoreStub) Save(ctx context.Context, activities []models.PersonalActivity) error {
	if s.err != nil {
		return s.err
	}
	s.saved = append(s.saved, activities...)
	return nil
}

func (s *personalStoreStub) List(ctx context.Context) ([]models.PersonalActivity, error) {
	return s.saved, s.err
}

func (s *personalStoreStub) Delete(ctx context.Context, id string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	for i, activity := range s.saved {
		if activity.ID == id {
			s.saved = append(s.saved[:i], s.saved[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func workRequest() dto.PersonalActivitiesRequest {
	return dto.PersonalActivitiesRequest{Activities: []dto.PersonalActivityPayload{
		{Name: " Work ", Meetings: []dto.MeetingPayload{{Day: 1, StartTime: "8:00", EndTime: "12:00"}}},
	}}
}

func TestPersonalActivityServiceSaveAndList(t *testing.T) {
	store := &personalStoreStub{}
	svc := NewPersonalActivityService(store, nil, nil, nil)

	saved, err := svc.Save(context.Background(), workRequest())
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, "Work", saved[0].Name)
	assert.Equal(t, "08:00", saved[0].Meetings[0].StartTime)
	assert.NotEmpty(t, saved[0].Meetings[0].ID)

	listed, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, saved, listed)

	require.NoError(t, svc.Delete(context.Background(), saved[0].ID))
	assert.ErrorIs(t, svc.Delete(context.Background(), saved[0].ID), appErrors.ErrNotFound)
}

func TestPersonalActivityServiceValidation(t *testing.T) {
	svc := NewPersonalActivityService(&personalStoreStub{}, nil, nil, nil)

	cases := map[string]func(*dto.PersonalActivitiesRequest){
		"no activities":    func(r *dto.PersonalActivitiesRequest) { r.Activities = nil },
		"blank name":       func(r *dto.PersonalActivitiesRequest) { r.Activities[0].Name = "   " },
		"no meetings":      func(r *dto.PersonalActivitiesRequest) { r.Activities[0].Meetings = nil },
		"bad day":          func(r *dto.PersonalActivitiesRequest) { r.Activities[0].Meetings[0].Day = 0 },
		"reversed meeting": func(r *dto.PersonalActivitiesRequest) { r.Activities[0].Meetings[0].EndTime = "07:00" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := workRequest()
			mutate(&req)
			_, err := svc.Save(context.Background(), req)
			assert.ErrorIs(t, err, appErrors.ErrValidation)
		})
	}
}

func TestPersonalActivityServiceStoreFailure(t *testing.T) {
	svc := NewPersonalActivityService(&personalStoreStub{err: errors.New("database is locked")}, nil, nil, nil)

	_, err := svc.Save(context.Background(), workRequest())
	assert.ErrorIs(t, err, appErrors.ErrInternal)
	_, err = svc.List(context.Background())
	assert.ErrorIs(t, err, appErrors.ErrInternal)
	assert.ErrorIs(t, svc.Delete(context.Background(), "x"), appErrors.ErrInternal)
}
