package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"mime/multipart"

	"github.com/gabriel-vasile/mimetype"
)

// maxImageSize is the upper bound for a single uploaded image file.
const maxImageSize = 5 << 20

// detectMimeType detects and validates the content type of a multipart file to ensure it is supported.
// This method is a workaround to the problem encountered when trying to detect content type directly
// inside the handler (i.e. the multipart file becomes corrupted once it's parsed to detect its mime type).
func (s *service) detectMimeType(file multipart.File, fileHeader *multipart.FileHeader) ([]byte, *mimetype.MIME, error) {
	size := fileHeader.Size
	buffer := make([]byte, size)
	_, err := file.Read(buffer)
	if err != nil {
		return nil, nil, err
	}
	mtype := mimetype.Detect(buffer)
	return buffer, mtype, nil
}

// readImage reads a multipart image file and checks its size and content
// type. Only JPEG and PNG files are accepted.
func (s *service) readImage(fileHeader *multipart.FileHeader) ([]byte, error) {
	if fileHeader.Size > maxImageSize {
		return nil, ErrContentTooLarge
	}
	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	buffer, mtype, err := s.detectMimeType(file, fileHeader)
	if err != nil {
		return nil, err
	}
	if mtype == nil || !(mtype.Is("image/jpeg") || mtype.Is("image/png")) {
		return nil, ErrUnsupportedMediaType
	}
	return buffer, nil
}

// storeImages saves every uploaded image under the given prefix and returns
// their relative URLs in submission order.
func (s *service) storeImages(prefix string, fileHeaders []*multipart.FileHeader) ([]string, error) {
	urls := make([]string, 0, len(fileHeaders))
	for _, fileHeader := range fileHeaders {
		buffer, err := s.readImage(fileHeader)
		if err != nil {
			return nil, err
		}
		url, err := s.store.Store(buffer, prefix, fileHeader.Filename)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

// generateOTP returns a random six-digit one-time passcode.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// background launches a background goroutine and recovers from panics inside
// the goroutine. It accepts an arbitrary function as a parameter and executes
// the function parameter inside the goroutine.
func (s *service) background(fn func()) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			if err := recover(); err != nil {
				s.logger.PrintError(fmt.Errorf("%s", err), nil)
			}
		}()
		fn()
	}()
}
