package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectURL(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		key  string
		want string
	}{
		{
			name: "virtual hosted",
			opts: Options{Bucket: "logos", Region: "eu-west-1"},
			key:  "logos/c1/a.png",
			want: "https://logos.s3.eu-west-1.amazonaws.com/logos/c1/a.png",
		},
		{
			name: "default region",
			opts: Options{Bucket: "logos"},
			key:  "c1/a.png",
			want: "https://logos.s3.us-east-1.amazonaws.com/c1/a.png",
		},
		{
			name: "public base url",
			opts: Options{Bucket: "logos", PublicBaseURL: "http://localhost:9000/logos/"},
			key:  "c1/my logo.png",
			want: "http://localhost:9000/logos/c1/my%20logo.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, objectURL(tt.opts, tt.key))
		})
	}
}
