package gormstore

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/asakaida/socialization/internal/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func (profile) IsFollower() bool   { return true }
func (profile) IsFollowable() bool { return true }
func (profile) IsLiker() bool      { return true }
func (profile) IsLikeable() bool   { return true }

// dryRunDB renders SQL without a database
func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()

	sqlDB, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)
	return db
}

func TestFollowablesScope_SQL(t *testing.T) {
	db := dryRunDB(t)
	alice := profile{ID: "alice"}

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return tx.Scopes(FollowablesScope(alice, "post")).Where("name <> ?", "cat").Find(&[]profile{})
	})

	assert.Contains(t, sql, `"loader_test_profiles"`)
	assert.Contains(t, sql, "id IN (SELECT")
	assert.Contains(t, sql, `"relationships"`)
	assert.Contains(t, sql, "'follow'")
	assert.Contains(t, sql, "'alice'")
	assert.Contains(t, sql, "'post'")
	assert.Contains(t, sql, "name <> 'cat'")
}

func TestScopes_InvalidInput(t *testing.T) {
	db := dryRunDB(t)

	tests := []struct {
		name  string
		scope func(*gorm.DB) *gorm.DB
	}{
		{"zero subject", ObjectsScope(entities.KindFollow, entities.Ref{}, "post")},
		{"nil followable", FollowersScope(nil, "user")},
		{"mention kind", SubjectsScope(entities.KindMention, entities.Ref{Type: "user", ID: "bob"}, "comment")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rows []profile
			err := db.Scopes(tt.scope).Find(&rows).Error
			assert.Error(t, err)
		})
	}
}

func TestScopes_Integration(t *testing.T) {
	db := setupGormDB(t)
	require.NoError(t, db.AutoMigrate(&profile{}))
	t.Cleanup(func() { db.Migrator().DropTable(&profile{}) })

	require.NoError(t, db.Create(&[]profile{{ID: "1", Name: "ann"}, {ID: "2", Name: "ben"}, {ID: "3", Name: "cat"}}).Error)

	ann, ben, cat := profile{ID: "1"}, profile{ID: "2"}, profile{ID: "3"}
	repo := NewGormRelationshipRepository(db)
	ctx := context.Background()
	for _, rel := range []*entities.Relationship{
		entities.NewRelationship(entities.KindFollow, ann, ben),
		entities.NewRelationship(entities.KindFollow, ann, cat),
		entities.NewRelationship(entities.KindFollow, cat, ben),
		entities.NewRelationship(entities.KindLike, ann, ben),
	} {
		require.NoError(t, repo.Create(ctx, rel))
	}

	names := func(q *gorm.DB) []string {
		var rows []profile
		require.NoError(t, q.Order("id").Find(&rows).Error)
		out := make([]string, len(rows))
		for i, row := range rows {
			out[i] = row.Name
		}
		return out
	}

	t.Run("followables", func(t *testing.T) {
		assert.Equal(t, []string{"ben", "cat"}, names(db.Scopes(FollowablesScope(ann, "profile"))))
	})

	t.Run("followables with extra condition", func(t *testing.T) {
		got := names(db.Scopes(FollowablesScope(ann, "profile")).Where("name <> ?", "cat"))
		assert.Equal(t, []string{"ben"}, got)
	})

	t.Run("followers", func(t *testing.T) {
		assert.Equal(t, []string{"ann", "cat"}, names(db.Scopes(FollowersScope(ben, "profile"))))
	})

	t.Run("likers do not see follows", func(t *testing.T) {
		assert.Equal(t, []string{"ann"}, names(db.Scopes(LikersScope(ben, "profile"))))
		assert.Empty(t, names(db.Scopes(LikeablesScope(cat, "profile"))))
	})

	t.Run("other object type", func(t *testing.T) {
		assert.Empty(t, names(db.Scopes(FollowablesScope(ann, "post"))))
	})
}
