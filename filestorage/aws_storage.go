package filestorage

import (
	"bytes"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

const (
	defaultRegion = "sa-east-1"
	acl           = "public-read"
)

// S3Client is a client for AWS S3.
type S3Client struct {
	uploader *s3manager.Uploader
}

// NewAWSClient returns a client for S3. Credentials come from the
// ACCESS_KEY_ID and SECRET_ACCESS_KEY environment variables.
func NewAWSClient(region string) (*S3Client, error) {
	accessKeyID := os.Getenv("ACCESS_KEY_ID")
	if accessKeyID == "" {
		return nil, fmt.Errorf("falta la variable de entorno ACCESS_KEY_ID")
	}
	secretAccessKey := os.Getenv("SECRET_ACCESS_KEY")
	if secretAccessKey == "" {
		return nil, fmt.Errorf("falta la variable de entorno SECRET_ACCESS_KEY")
	}
	if region == "" {
		region = defaultRegion
	}
	sess, err := session.NewSession(&aws.Config{
		Region:      aws.String(region),
		Credentials: credentials.NewStaticCredentials(accessKeyID, secretAccessKey, ""),
	})
	if err != nil {
		return nil, fmt.Errorf("falla al crear la sesión de AWS, error %q", err)
	}
	return &S3Client{uploader: s3manager.NewUploader(sess)}, nil
}

// Upload sends b to s3://bucket/fileName and returns its location.
func (c *S3Client) Upload(b []byte, bucket, fileName string) (string, error) {
	up, err := c.uploader.Upload(&s3manager.UploadInput{
		Bucket:      aws.String(bucket),
		ACL:         aws.String(acl),
		Key:         aws.String(fileName),
		ContentType: aws.String(contentType(fileName)),
		Body:        bytes.NewReader(b),
	})
	if err != nil {
		return "", fmt.Errorf("falla al enviar el archivo [%s] al bucket [%s], error %q", fileName, bucket, err)
	}
	return up.Location, nil
}
