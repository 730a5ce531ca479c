package kvstore

import (
	"context"
	"log/slog"

	"tapify/internal/errors"

	"go.uber.org/fx"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob"
	"gocloud.dev/gcerrors"
)

// blobKV stores payloads as objects in a Go CDK blob bucket. Local
// deployments use file:// buckets, tests use mem://.
type blobKV struct {
	bucket *blob.Bucket
	logger *slog.Logger
}

// NewBlobKV opens the bucket and registers its close with the lifecycle.
func NewBlobKV(ctx context.Context, lc fx.Lifecycle, bucketURL string, logger *slog.Logger) (KV, error) {
	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "open bucket %s", bucketURL)
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			logger.Info("Closing blob bucket")

			return bucket.Close()
		},
	})

	return &blobKV{
		bucket: bucket,
		logger: logger,
	}, nil
}

func (b *blobKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	payload, err := b.bucket.ReadAll(ctx, key)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, false, nil
		}

		return nil, false, errors.Wrapf(err, "read blob %s", key)
	}

	return payload, true, nil
}

func (b *blobKV) Set(ctx context.Context, key string, value []byte) error {
	if err := b.bucket.WriteAll(ctx, key, value, nil); err != nil {
		return errors.Wrapf(err, "write blob %s", key)
	}

	return nil
}

func (b *blobKV) Delete(ctx context.Context, key string) error {
	if err := b.bucket.Delete(ctx, key); err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil
		}

		return errors.Wrapf(err, "delete blob %s", key)
	}

	return nil
}
