package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/joshua-takyi/agenda/internal/apperrors"
	"github.com/joshua-takyi/agenda/internal/media"
)

// MaxPrefixRounds bounds the delete-by-prefix rounds of a folder deletion.
const MaxPrefixRounds = 10

const (
	PhaseAssets = "assets"
	PhaseFolder = "folder"
)

var (
	folderPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+(/[A-Za-z0-9_-]+)*$`)
	namePattern   = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)
)

// MediaHost is the subset of the media host the API proxies.
type MediaHost interface {
	UploadImage(ctx context.Context, folder, name string, image []byte) (*media.Asset, error)
	DestroyImage(ctx context.Context, publicID string) (string, error)
	DeleteByPrefix(ctx context.Context, prefix string) (*media.PrefixDeletion, error)
	DeleteFolder(ctx context.Context, folder string) error
	Search(ctx context.Context, expression string) (*media.SearchResult, error)
}

// FolderDeletion reports a completed folder deletion.
type FolderDeletion struct {
	Folder        string `json:"folder"`
	AssetsDeleted int    `json:"assetsDeleted"`
	FolderExisted bool   `json:"folderExisted"`
}

// FolderCount is the answer of a folder count lookup.
type FolderCount struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// PhaseError tells which step of a folder deletion failed. Running the
// deletion again resumes from whatever is left.
type PhaseError struct {
	Folder string
	Phase  string
	Err    error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("deleting folder %s failed in %s phase: %v", e.Folder, e.Phase, e.Err)
}

func (e *PhaseError) Unwrap() error {
	return e.Err
}

type MediaService struct {
	host    MediaHost
	timeout time.Duration
	logger  *slog.Logger
}

func NewMediaService(host MediaHost, timeout time.Duration, logger *slog.Logger) *MediaService {
	return &MediaService{
		host:    host,
		timeout: timeout,
		logger:  logger,
	}
}

func (ms *MediaService) Upload(ctx context.Context, folder, name string, image []byte) (*media.Asset, error) {
	if err := checkFolder(folder); err != nil {
		return nil, err
	}
	if name != "" {
		if err := checkName(name); err != nil {
			return nil, err
		}
	}
	if len(image) == 0 {
		return nil, apperrors.BadRequest("image is required")
	}

	ctx, cancel := context.WithTimeout(ctx, ms.timeout)
	defer cancel()
	return ms.host.UploadImage(ctx, folder, name, image)
}

// DeleteImage removes folder/name and returns the host's verdict.
func (ms *MediaService) DeleteImage(ctx context.Context, folder, name string) (string, error) {
	if err := checkFolder(folder); err != nil {
		return "", err
	}
	if err := checkName(name); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, ms.timeout)
	defer cancel()
	return ms.host.DestroyImage(ctx, media.PublicID(folder, name))
}

// DeleteFolder removes every asset under folder, then the folder itself.
// A folder the host no longer knows counts as deleted, so a retry after a
// failure in either phase converges.
func (ms *MediaService) DeleteFolder(ctx context.Context, folder string) (*FolderDeletion, error) {
	if err := checkFolder(folder); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, ms.timeout)
	defer cancel()

	out := &FolderDeletion{Folder: folder}
	prefix := folder + "/"
	for round := 1; ; round++ {
		res, err := ms.host.DeleteByPrefix(ctx, prefix)
		if err != nil {
			return nil, &PhaseError{Folder: folder, Phase: PhaseAssets, Err: err}
		}
		out.AssetsDeleted += res.Deleted
		if !res.Partial {
			break
		}
		if round == MaxPrefixRounds {
			return nil, &PhaseError{Folder: folder, Phase: PhaseAssets, Err: fmt.Errorf("assets still left after %d rounds", round)}
		}
	}

	err := ms.host.DeleteFolder(ctx, folder)
	switch {
	case errors.Is(err, media.ErrFolderNotFound):
		ms.logger.Debug("Folder already gone", "folder", folder)
	case err != nil:
		return nil, &PhaseError{Folder: folder, Phase: PhaseFolder, Err: err}
	default:
		out.FolderExisted = true
	}

	ms.logger.Info("Folder deleted", "folder", folder, "assets_deleted", out.AssetsDeleted, "folder_existed", out.FolderExisted)
	return out, nil
}

// CountFolder counts the assets stored under folder.
func (ms *MediaService) CountFolder(ctx context.Context, folder string) (*FolderCount, error) {
	if err := checkFolder(folder); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, ms.timeout)
	defer cancel()

	res, err := ms.host.Search(ctx, fmt.Sprintf("folder:%s/*", folder))
	if err != nil {
		return nil, err
	}
	if res.TotalCount == 0 {
		return &FolderCount{Message: "not found", Count: 0}, nil
	}
	return &FolderCount{Message: "success", Count: res.TotalCount}, nil
}

// FindImage looks up folder/name.
func (ms *MediaService) FindImage(ctx context.Context, folder, name string) (*media.SearchResult, error) {
	if err := checkFolder(folder); err != nil {
		return nil, err
	}
	if err := checkName(name); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, ms.timeout)
	defer cancel()
	return ms.host.Search(ctx, "public_id:"+media.PublicID(folder, name))
}

func checkFolder(folder string) error {
	if folder == "" {
		return apperrors.BadRequest("folderName is required")
	}
	if !folderPattern.MatchString(folder) {
		return apperrors.BadRequest("invalid folderName %q", folder)
	}
	return nil
}

func checkName(name string) error {
	if name == "" {
		return apperrors.BadRequest("imageName is required")
	}
	if !namePattern.MatchString(name) {
		return apperrors.BadRequest("invalid imageName %q", name)
	}
	return nil
}
