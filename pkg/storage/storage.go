// Package storage provides blob storage for raw dataset files, backed by
// Azure Blob Storage.
package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"

	"github.com/calyxlabs/calyx/pkg/lifecycle"
)

// System manages blob operations and lifecycle coordination.
type System interface {
	// Start registers a startup hook that initializes the container.
	Start(lc *lifecycle.Coordinator) error
	// Upload streams data to the blob at key with the given content type.
	Upload(ctx context.Context, key string, reader io.Reader, contentType string) error
	// Download returns a stream for the blob at key; the caller closes it.
	// Returns ErrNotFound when the blob does not exist.
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete removes the blob at key. Returns ErrNotFound when absent.
	Delete(ctx context.Context, key string) error
	// Exists reports whether a blob exists at key.
	Exists(ctx context.Context, key string) (bool, error)
}

type azure struct {
	client    *azblob.Client
	container string
	logger    *slog.Logger
}

// New validates the connection string and creates the Azure client. The
// container is not touched until Start.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	client, err := azblob.NewClientFromConnectionString(cfg.ConnectionString, nil)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	return &azure{
		client:    client,
		container: cfg.ContainerName,
		logger:    logger.With("system", "storage"),
	}, nil
}

func (a *azure) Start(lc *lifecycle.Coordinator) error {
	a.logger.Info("starting storage system")

	lc.OnStartup(func() {
		_, err := a.client.CreateContainer(lc.Context(), a.container, nil)
		if err != nil && !bloberror.HasCode(err, bloberror.ContainerAlreadyExists) {
			a.logger.Error("storage container initialization failed", "error", err)
			return
		}

		a.logger.Info("storage container ready", "container", a.container)
	})

	return nil
}

func (a *azure) Upload(ctx context.Context, key string, reader io.Reader, contentType string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	opts := &azblob.UploadStreamOptions{
		HTTPHeaders: &blob.HTTPHeaders{
			BlobContentType: &contentType,
		},
	}

	if _, err := a.client.UploadStream(ctx, a.container, key, reader, opts); err != nil {
		return fmt.Errorf("upload blob %s: %w", key, err)
	}

	return nil
}

func (a *azure) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	resp, err := a.client.DownloadStream(ctx, a.container, key, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("download blob %s: %w", key, err)
	}

	return resp.Body, nil
}

func (a *azure) Delete(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	if _, err := a.client.DeleteBlob(ctx, a.container, key, nil); err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete blob %s: %w", key, err)
	}

	return nil
}

func (a *azure) Exists(ctx context.Context, key string) (bool, error) {
	if err := validateKey(key); err != nil {
		return false, err
	}

	blobClient := a.client.
		ServiceClient().
		NewContainerClient(a.container).
		NewBlobClient(key)

	if _, err := blobClient.GetProperties(ctx, nil); err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("check blob existence %s: %w", key, err)
	}

	return true, nil
}

func validateKey(key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if strings.Contains(key, "..") {
		return ErrInvalidKey
	}
	return nil
}
