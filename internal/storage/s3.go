package storage

import (
	"bytes"
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3 stores image files in an AWS S3 bucket under the same key layout as
// the filesystem store. Relative URLs are object keys; a base URL for the
// bucket is prepended by the caller's configuration when serving them.
type S3 struct {
	client *s3.Client
	bucket string
}

// NewS3 returns an S3 store writing to the given bucket.
func NewS3(client *s3.Client, bucket string) *S3 {
	return &S3{client: client, bucket: bucket}
}

// Store uploads a file to bookImages/<prefix>/<fileName> and returns the key.
func (st *S3) Store(data []byte, prefix, fileName string) (string, error) {
	key := ImagePrefix + "/" + prefix + "/" + fileName
	uploader := manager.NewUploader(st.client)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	_, err := uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(st.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return "", err
	}
	return key, nil
}

// DeleteAll removes every object under bookImages/<prefix>/. It returns
// false if no objects existed under the prefix.
func (st *S3) DeleteAll(prefix string) (bool, error) {
	key := ImagePrefix + "/" + prefix + "/"
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	list, err := st.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(st.bucket),
		Prefix: aws.String(key),
	})
	if err != nil {
		return false, err
	}
	if len(list.Contents) == 0 {
		return false, nil
	}
	objects := make([]types.ObjectIdentifier, 0, len(list.Contents))
	for _, object := range list.Contents {
		objects = append(objects, types.ObjectIdentifier{Key: object.Key})
	}
	_, err = st.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
		Bucket: aws.String(st.bucket),
		Delete: &types.Delete{Objects: objects},
	})
	if err != nil {
		return false, err
	}
	return true, nil
}
