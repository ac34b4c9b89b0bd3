package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	gh "github.com/google/go-github/v66/github"
	"go.uber.org/zap"

	"github.com/BarkinBalci/launch-tracker/internal/blob"
	"github.com/BarkinBalci/launch-tracker/internal/config"
)

// Backend stores blobs as files in a GitHub repository via the contents
// API. The version token is the file's blob SHA.
type Backend struct {
	client *gh.Client
	owner  string
	repo   string
	branch string
	log    *zap.Logger
}

// NewBackend creates a GitHub-backed blob store
func NewBackend(cfg config.GitHub, log *zap.Logger) (*Backend, error) {
	owner, repo, ok := strings.Cut(cfg.Repository, "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return nil, fmt.Errorf("invalid GitHub repository %q (expected owner/name)", cfg.Repository)
	}

	client := gh.NewClient(nil)
	if cfg.Token != "" {
		client = client.WithAuthToken(cfg.Token)
	}
	if cfg.BaseURL != "" {
		base, err := url.Parse(strings.TrimSuffix(cfg.BaseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub base URL: %w", err)
		}
		client.BaseURL = base
	}

	log.Info("GitHub store configured",
		zap.String("repository", cfg.Repository),
		zap.String("branch", cfg.Branch))

	return &Backend{
		client: client,
		owner:  owner,
		repo:   repo,
		branch: cfg.Branch,
		log:    log,
	}, nil
}

func (b *Backend) Fetch(ctx context.Context, path string) (*blob.Object, error) {
	var opts *gh.RepositoryContentGetOptions
	if b.branch != "" {
		opts = &gh.RepositoryContentGetOptions{Ref: b.branch}
	}

	file, _, _, err := b.client.Repositories.GetContents(ctx, b.owner, b.repo, path, opts)
	if err != nil {
		if statusOf(err) == http.StatusNotFound {
			return nil, blob.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get %s: %w", path, err)
	}
	if file == nil {
		return nil, fmt.Errorf("%s is a directory", path)
	}

	// Files over 1MB come back without inline content.
	if file.GetEncoding() == "none" {
		raw, _, err := b.client.Git.GetBlobRaw(ctx, b.owner, b.repo, file.GetSHA())
		if err != nil {
			return nil, fmt.Errorf("failed to get blob %s: %w", file.GetSHA(), err)
		}
		return &blob.Object{Content: raw, Version: file.GetSHA()}, nil
	}

	content, err := file.GetContent()
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	return &blob.Object{Content: []byte(content), Version: file.GetSHA()}, nil
}

func (b *Backend) Create(ctx context.Context, path string, content []byte, message string) (string, error) {
	res, _, err := b.client.Repositories.CreateFile(ctx, b.owner, b.repo, path, b.fileOptions(content, message, nil))
	if err != nil {
		switch statusOf(err) {
		case http.StatusConflict:
			return "", fmt.Errorf("%w: %v", blob.ErrAlreadyExists, err)
		case http.StatusUnprocessableEntity:
			// A create without a SHA against an existing file is rejected as
			// unprocessable, and so are plain validation failures.
			if b.exists(ctx, path) {
				return "", fmt.Errorf("%w: %v", blob.ErrAlreadyExists, err)
			}
		}
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	b.log.Debug("Created file on GitHub",
		zap.String("path", path),
		zap.String("commit", res.Commit.GetSHA()))
	return res.GetContent().GetSHA(), nil
}

func (b *Backend) exists(ctx context.Context, path string) bool {
	_, err := b.Fetch(ctx, path)
	return err == nil
}

func (b *Backend) Update(ctx context.Context, path string, content []byte, expected string, message string) (string, error) {
	res, _, err := b.client.Repositories.UpdateFile(ctx, b.owner, b.repo, path, b.fileOptions(content, message, &expected))
	if err != nil {
		switch statusOf(err) {
		case http.StatusConflict:
			return "", fmt.Errorf("%w: %v", blob.ErrVersionMismatch, err)
		case http.StatusNotFound:
			return "", fmt.Errorf("%w: %v", blob.ErrNotFound, err)
		}
		return "", fmt.Errorf("failed to update %s: %w", path, err)
	}
	b.log.Debug("Updated file on GitHub",
		zap.String("path", path),
		zap.String("commit", res.Commit.GetSHA()))
	return res.GetContent().GetSHA(), nil
}

func (b *Backend) fileOptions(content []byte, message string, sha *string) *gh.RepositoryContentFileOptions {
	opts := &gh.RepositoryContentFileOptions{
		Message: gh.String(message),
		Content: content,
		SHA:     sha,
	}
	if b.branch != "" {
		opts.Branch = gh.String(b.branch)
	}
	return opts
}

func statusOf(err error) int {
	var errResp *gh.ErrorResponse
	if errors.As(err, &errResp) && errResp.Response != nil {
		return errResp.Response.StatusCode
	}
	return 0
}
