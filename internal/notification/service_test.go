package notification

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pavan8023/webibook-backend/internal/event"
)

type fakeRepo struct {
	Repository
	inApp []InAppNotification
}

func (r *fakeRepo) CreateInApp(_ context.Context, n *InAppNotification) error {
	r.inApp = append(r.inApp, *n)
	return nil
}

func (r *fakeRepo) ActiveTokensForUsers(_ context.Context, _ []uint) ([]string, error) {
	return nil, nil
}

type fakeRegistrants struct {
	ids []uint
	err error
}

func (f *fakeRegistrants) ConfirmedUserIDs(_ uint) ([]uint, error) {
	return f.ids, f.err
}

type fakeHosts struct {
	ev  *event.Event
	err error
}

func (f *fakeHosts) GetEventByID(_ uint) (*event.Event, error) {
	return f.ev, f.err
}

func TestNotifyEventLive_FansOutToEveryRegistrant(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, &fakeRegistrants{ids: []uint{10, 11, 12}}, &fakeHosts{})

	svc.NotifyEventLive(context.Background(), event.Event{ID: 5, Title: "Intro to Gardening"})

	require.Len(t, repo.inApp, 3)
	for i, uid := range []uint{10, 11, 12} {
		assert.Equal(t, uid, repo.inApp[i].UserID)
		require.NotNil(t, repo.inApp[i].EventID)
		assert.Equal(t, uint(5), *repo.inApp[i].EventID)
		assert.Contains(t, repo.inApp[i].Message, "Intro to Gardening")
	}
}

func TestNotifyEventLive_NoRegistrantsIsQuiet(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, &fakeRegistrants{}, &fakeHosts{})

	svc.NotifyEventLive(context.Background(), event.Event{ID: 5})

	assert.Empty(t, repo.inApp)
}

func TestNotifyEventLive_LookupFailureIsSwallowed(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, &fakeRegistrants{err: errors.New("db down")}, &fakeHosts{})

	// Must not panic or create anything; callers never see the error.
	svc.NotifyEventLive(context.Background(), event.Event{ID: 5})

	assert.Empty(t, repo.inApp)
}

func TestNotifyHostEventLive_TargetsTheHost(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, &fakeRegistrants{}, &fakeHosts{ev: &event.Event{ID: 5, HostID: 77}})

	svc.NotifyHostEventLive(context.Background(), 5, "Intro to Gardening")

	require.Len(t, repo.inApp, 1)
	assert.Equal(t, uint(77), repo.inApp[0].UserID)
	assert.Contains(t, repo.inApp[0].Message, "now live")
}

func TestNotifyHostOfRegistration_TargetsTheHost(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, &fakeRegistrants{}, &fakeHosts{ev: &event.Event{ID: 5, HostID: 77}})

	svc.NotifyHostOfRegistration(context.Background(), 5, 42, "Intro to Gardening")

	require.Len(t, repo.inApp, 1)
	assert.Equal(t, uint(77), repo.inApp[0].UserID)
	assert.Equal(t, "registration", repo.inApp[0].Category)
}
