package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/opentask-server/internal/mocks"
	"github.com/dtroode/opentask-server/internal/model"
	"github.com/dtroode/opentask-server/internal/testutil"
)

func TestFile_Upload_GeneratesKey(t *testing.T) {
	ctx := context.Background()
	storage := &mocks.FileStorage{}
	storage.On("Upload", mock.Anything, mock.MatchedBy(func(key string) bool {
		return strings.HasSuffix(key, ".pdf") && !strings.ContainsAny(key, `/\`)
	}), mock.Anything).Return(nil)

	svc := NewFile(storage, testutil.MakeNoopLogger())

	key, err := svc.Upload(ctx, "report.pdf", strings.NewReader("data"))
	require.NoError(t, err)
	assert.NotEqual(t, "report.pdf", key)
	assert.True(t, strings.HasSuffix(key, ".pdf"))
}

func TestFile_Upload_TraversalNameIsContained(t *testing.T) {
	ctx := context.Background()
	var gotKey string
	storage := &mocks.FileStorage{}
	storage.On("Upload", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { gotKey = args.String(1) }).
		Return(nil)

	svc := NewFile(storage, testutil.MakeNoopLogger())

	_, err := svc.Upload(ctx, "../../etc/passwd", strings.NewReader("x"))
	require.NoError(t, err)
	assert.NotContains(t, gotKey, "/")
	assert.NotContains(t, gotKey, `\`)
	assert.NotContains(t, gotKey, "..")
	assert.NotContains(t, gotKey, "passwd")
}

func TestFile_Upload_SameNameTwiceDistinctKeys(t *testing.T) {
	ctx := context.Background()
	var keys []string
	storage := &mocks.FileStorage{}
	storage.On("Upload", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { keys = append(keys, args.String(1)) }).
		Return(nil)

	svc := NewFile(storage, testutil.MakeNoopLogger())

	_, err := svc.Upload(ctx, "same.txt", strings.NewReader("one"))
	require.NoError(t, err)
	_, err = svc.Upload(ctx, "same.txt", strings.NewReader("two"))
	require.NoError(t, err)

	require.Len(t, keys, 2)
	assert.NotEqual(t, keys[0], keys[1])
}

func TestFile_Download_TraversalKey(t *testing.T) {
	svc := NewFile(&mocks.FileStorage{}, testutil.MakeNoopLogger())

	for _, key := range []string{"../../etc/passwd", "a/b", `a\b`, "..", ""} {
		_, err := svc.Download(context.Background(), key)
		require.ErrorIs(t, err, model.ErrNotFound, "key %q", key)
	}
}

func TestFile_Download_Missing(t *testing.T) {
	storage := &mocks.FileStorage{}
	storage.On("Exists", mock.Anything, "missing.txt").Return(false, nil)

	svc := NewFile(storage, testutil.MakeNoopLogger())

	_, err := svc.Download(context.Background(), "missing.txt")
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestSafeExt(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"report.pdf", ".pdf"},
		{"archive.TAR", ".tar"},
		{"no-extension", ""},
		{"../../etc/passwd", ""},
		{`..\..\boot.ini`, ".ini"},
		{"weird.ext!", ""},
		{".hidden", ""},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, safeExt(tt.filename), "filename %q", tt.filename)
	}
}
