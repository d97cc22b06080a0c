package domain

import (
	"fmt"
	"io"
	"net/url"

	"github.com/gabriel-vasile/mimetype"
)

// ImageType is a supported image encoding.
type ImageType string

const (
	ImageTypeJPEG ImageType = "JPEG"
	ImageTypePNG  ImageType = "PNG"
)

var imageMimeTypes = map[ImageType]string{
	ImageTypeJPEG: "image/jpeg",
	ImageTypePNG:  "image/png",
}

// MimeType returns the MIME type string, or "" for an unknown type.
func (t ImageType) MimeType() string {
	return imageMimeTypes[t]
}

func (t ImageType) String() string {
	return string(t)
}

func ToImageType(s string) (ImageType, error) {
	t := ImageType(s)
	if _, ok := imageMimeTypes[t]; ok {
		return t, nil
	}
	return "", NewInvalidArgumentError("unsupported image type %q", s)
}

func ImageTypeFromMIME(mime string) (ImageType, error) {
	for t, m := range imageMimeTypes {
		if m == mime {
			return t, nil
		}
	}
	return "", NewInvalidArgumentError("unsupported image MIME type %q", mime)
}

// DetectImageType sniffs the encoding from the content of r.
func DetectImageType(r io.Reader) (ImageType, error) {
	mtype, err := mimetype.DetectReader(r)
	if err != nil {
		return "", fmt.Errorf("mimetype.DetectReader: %w", err)
	}
	for t, m := range imageMimeTypes {
		if mtype.Is(m) {
			return t, nil
		}
	}
	return "", NewInvalidArgumentError("unsupported image MIME type %q", mtype.String())
}

// ResourceSchemeAndroid is the URL scheme of resources bundled with an application.
const ResourceSchemeAndroid = "android.resource"

// ResourceContext is the host application a resource belongs to.
type ResourceContext interface {
	PackageName() string
}

// Image is an image locatable via a URL.
type Image struct {
	url       string
	imageType ImageType
}

func NewImage(rawURL string, imageType ImageType) (Image, error) {
	if err := validateImage(rawURL, imageType); err != nil {
		return Image{}, err
	}
	return Image{url: rawURL, imageType: imageType}, nil
}

// ImageForResource constructs an Image for a resource bundled with the application
// in ctx. No I/O happens here; the payment application resolves the URL later.
func ImageForResource(ctx ResourceContext, resourceID int, imageType ImageType) (Image, error) {
	if ctx == nil {
		return Image{}, NewNullReferenceError("context")
	}
	return NewImage(fmt.Sprintf("%s://%s/%d", ResourceSchemeAndroid, ctx.PackageName(), resourceID), imageType)
}

func validateImage(rawURL string, imageType ImageType) error {
	if rawURL == "" {
		return NewNullReferenceError("url")
	}
	if imageType == "" {
		return NewNullReferenceError("type")
	}
	if _, err := ToImageType(string(imageType)); err != nil {
		return err
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return &DomainError{Code: ErrCodeInvalidArgument, Message: "malformed image url", Err: err}
	}
	if u.Scheme == "" {
		return NewInvalidArgumentError("image url %q has no scheme", rawURL)
	}
	return nil
}

// URL returns a URL that can be used to retrieve the image.
func (i Image) URL() string {
	return i.url
}

func (i Image) Type() ImageType {
	return i.imageType
}

// IsZero reports whether i is the zero value, i.e. was never constructed.
func (i Image) IsZero() bool {
	return i.url == ""
}

func (i Image) String() string {
	return fmt.Sprintf("Image{type=%s, url=%s}", i.imageType, i.url)
}
