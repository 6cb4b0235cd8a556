package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTaskRepository(t *testing.T) {
	db := &Connection{}
	repo := NewTaskRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}
