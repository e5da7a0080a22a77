package service

import (
	"context"
	"sort"
	"testing"
	"time"

	"excel-analytics-be/internal/entity"
	"excel-analytics-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	users []*entity.User
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.users = append(r.users, user)
	return nil
}

func (r *fakeUserRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.User, error) {
	for _, u := range r.users {
		if matchUser(u, specs) {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	var result []*entity.User
	for _, u := range r.users {
		if matchUser(u, specs) {
			result = append(result, u)
		}
	}
	for _, s := range specs {
		if o, ok := s.(specification.OrderBy); ok && o.Field == "created_at" && o.Desc {
			sort.SliceStable(result, func(i, j int) bool {
				return result[i].CreatedAt.After(result[j].CreatedAt)
			})
		}
	}
	for _, s := range specs {
		if p, ok := s.(specification.Pagination); ok {
			if p.Offset < len(result) {
				result = result[p.Offset:]
			} else {
				result = nil
			}
			if p.Limit < len(result) {
				result = result[:p.Limit]
			}
		}
	}
	return result, nil
}

func (r *fakeUserRepo) Count(_ context.Context, specs ...specification.Specification) (int64, error) {
	count := int64(0)
	for _, u := range r.users {
		if matchUser(u, specs) {
			count++
		}
	}
	return count, nil
}

func matchUser(u *entity.User, specs []specification.Specification) bool {
	for _, s := range specs {
		if e, ok := s.(specification.ByEmail); ok && u.Email != e.Email {
			return false
		}
	}
	return true
}

type fakeSystemLogRepo struct {
	logs []*entity.SystemLog
}

func (r *fakeSystemLogRepo) Create(_ context.Context, log *entity.SystemLog) error {
	r.logs = append(r.logs, log)
	return nil
}

func (r *fakeSystemLogRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.SystemLog, error) {
	var result []*entity.SystemLog
	for _, l := range r.logs {
		if matchLog(l, specs) {
			result = append(result, l)
		}
	}
	return result, nil
}

func (r *fakeSystemLogRepo) Count(_ context.Context, specs ...specification.Specification) (int64, error) {
	count := int64(0)
	for _, l := range r.logs {
		if matchLog(l, specs) {
			count++
		}
	}
	return count, nil
}

func matchLog(l *entity.SystemLog, specs []specification.Specification) bool {
	for _, s := range specs {
		switch sp := s.(type) {
		case specification.ByLevel:
			if l.Level != sp.Level {
				return false
			}
		case specification.CreatedSince:
			if l.CreatedAt.Before(sp.After) {
				return false
			}
		}
	}
	return true
}

func newAdminFixture() (IAdminService, *fakeUserRepo, *fakeUploadRepo, *fakeSystemLogRepo) {
	users := &fakeUserRepo{}
	uploads := &fakeUploadRepo{}
	logs := &fakeSystemLogRepo{}
	svc := NewAdminService(&fakeFactory{uow: &fakeUow{uploads: uploads, users: users, logs: logs}})
	return svc, users, uploads, logs
}

func seedUser(t *testing.T, repo *fakeUserRepo, email string, createdAt time.Time) {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), &entity.User{
		Id:           uuid.New(),
		Email:        email,
		FullName:     email,
		PasswordHash: "x",
		Role:         entity.UserRoleUser,
		CreatedAt:    createdAt,
	}))
}

func TestGetStatsCounts(t *testing.T) {
	svc, users, uploads, logs := newAdminFixture()
	now := time.Now()

	seedUser(t, users, "a@example.com", now)
	seedUser(t, users, "b@example.com", now)
	require.NoError(t, uploads.Create(context.Background(), &entity.Upload{Id: uuid.New(), CreatedAt: now}))

	// One fresh log, one outside the 24h window.
	require.NoError(t, logs.Create(context.Background(), &entity.SystemLog{
		Id: uuid.New(), Level: "INFO", Message: "upload.ingested", CreatedAt: now,
	}))
	require.NoError(t, logs.Create(context.Background(), &entity.SystemLog{
		Id: uuid.New(), Level: "INFO", Message: "upload.ingested", CreatedAt: now.Add(-48 * time.Hour),
	}))

	stats, err := svc.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalUsers)
	assert.Equal(t, int64(1), stats.TotalUploads)
	assert.Equal(t, int64(1), stats.RecentLogs, "stale logs stay out of the recent counter")
}

func TestGetStatsEmpty(t *testing.T) {
	svc, _, _, _ := newAdminFixture()

	stats, err := svc.GetStats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.TotalUsers)
	assert.Zero(t, stats.TotalUploads)
	assert.Zero(t, stats.RecentLogs)
}

func TestListUsersNewestFirstWithoutHashes(t *testing.T) {
	svc, users, _, _ := newAdminFixture()
	base := time.Now()

	seedUser(t, users, "old@example.com", base)
	seedUser(t, users, "new@example.com", base.Add(time.Minute))

	res, err := svc.ListUsers(context.Background(), 50, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Total)
	require.Len(t, res.Users, 2)
	assert.Equal(t, "new@example.com", res.Users[0].Email)
	assert.Equal(t, "old@example.com", res.Users[1].Email)
}

func TestListUsersPagination(t *testing.T) {
	svc, users, _, _ := newAdminFixture()
	base := time.Now()

	for i, email := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		seedUser(t, users, email, base.Add(time.Duration(i)*time.Minute))
	}

	res, err := svc.ListUsers(context.Background(), 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.Total, "total ignores the page window")
	require.Len(t, res.Users, 1)
	assert.Equal(t, "a@x.com", res.Users[0].Email)
}

func TestGetLogsLevelFilter(t *testing.T) {
	svc, _, _, logs := newAdminFixture()
	now := time.Now()

	require.NoError(t, logs.Create(context.Background(), &entity.SystemLog{
		Id: uuid.New(), Level: "INFO", Message: "upload.ingested", CreatedAt: now,
	}))
	require.NoError(t, logs.Create(context.Background(), &entity.SystemLog{
		Id: uuid.New(), Level: "WARN", Message: "upload.ingested", CreatedAt: now,
	}))

	res, err := svc.GetLogs(context.Background(), "WARN", 50, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Total)
	require.Len(t, res.Logs, 1)
	assert.Equal(t, "WARN", res.Logs[0].Level)
}
