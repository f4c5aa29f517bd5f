package ali

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss"
	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss/credentials"
	"github.com/google/uuid"
	"github.com/reusedev/meme-hub/config"
	"github.com/reusedev/meme-hub/tools"
)

// Client uploads finished memes to a single bucket directory.
type Client struct {
	client     *oss.Client
	bucketName string
	directory  string
}

func New(cfg config.AliOss) (*Client, error) {
	if cfg.Bucket == "" || cfg.Region == "" {
		return nil, errors.New("ali oss: bucket and region are required")
	}
	credential := credentials.NewStaticCredentialsProvider(cfg.AccessKeyId, cfg.AccessKeySecret, "")
	ossCfg := oss.LoadDefaultConfig().
		WithCredentialsProvider(credential).
		WithRegion(cfg.Region)
	if cfg.Endpoint != "" {
		ossCfg = ossCfg.WithEndpoint(cfg.Endpoint)
	}
	client := oss.NewClient(ossCfg)
	if client == nil {
		return nil, errors.New("ali oss: create client failed")
	}
	return &Client{
		client:     client,
		bucketName: cfg.Bucket,
		directory:  cfg.Directory,
	}, nil
}

// UploadImage stores b under a fresh uuid key and returns the key.
func (c *Client) UploadImage(ctx context.Context, b []byte) (string, error) {
	imageType := tools.DetectImageType(b)
	fName := uuid.New().String() + imageType.Ext()
	key := c.fullPath(fName)
	return key, c.upload(ctx, fName, key, imageType.ContentType(), bytes.NewReader(b))
}

// URL presigns a GET of key valid for expire.
func (c *Client) URL(ctx context.Context, key string, expire time.Duration) (string, error) {
	ret, err := c.client.Presign(ctx, &oss.GetObjectRequest{Bucket: oss.Ptr(c.bucketName), Key: oss.Ptr(key)}, oss.PresignExpires(expire))
	if err != nil {
		return "", err
	}
	return ret.URL, nil
}

func (c *Client) fullPath(fName string) string {
	dir := strings.Trim(c.directory, "/")
	if dir == "" {
		return fName
	}
	return path.Join(dir, fName)
}

func (c *Client) upload(ctx context.Context, fName, key, contentType string, reader io.Reader) error {
	request := &oss.PutObjectRequest{
		Bucket:             oss.Ptr(c.bucketName),
		Key:                oss.Ptr(key),
		Body:               reader,
		ContentType:        oss.Ptr(contentType),
		ContentDisposition: oss.Ptr(fmt.Sprintf("attachment; filename=\"%s\"", fName)),
	}
	if _, err := c.client.PutObject(ctx, request); err != nil {
		return fmt.Errorf("ali oss put %s: %w", key, err)
	}
	return nil
}
