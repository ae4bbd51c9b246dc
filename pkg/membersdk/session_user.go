package membersdk

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// GetUser returns a member profile.
func (s *Session) GetUser(ctx context.Context, userID int64) (*UserResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, fmt.Sprintf("/users/%d", userID), nil, nil)
	if err != nil {
		return nil, err
	}

	var out UserResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateUser changes the caller's own display name.
func (s *Session) UpdateUser(ctx context.Context, userID int64, req UpdateUserRequest) error {
	body, headers, err := jsonBody(req)
	if err != nil {
		return err
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPut, fmt.Sprintf("/users/%d", userID), body, headers)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// UploadPhoto uploads an image for the caller. The photo starts pending.
func (s *Session) UploadPhoto(
	ctx context.Context,
	userID int64,
	filename, description string,
	image io.Reader,
) (*PhotoResponse, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	if err := mw.WriteField("description", description); err != nil {
		return nil, fmt.Errorf("failed to write form: %w", err)
	}
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to write form: %w", err)
	}
	if _, err := io.Copy(fw, image); err != nil {
		return nil, fmt.Errorf("failed to write form: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to write form: %w", err)
	}

	headers := map[string]string{"Content-Type": mw.FormDataContentType()}
	resp, err := s.doAuthRequest(ctx, http.MethodPost, fmt.Sprintf("/users/%d/photos", userID), &buf, headers)
	if err != nil {
		return nil, err
	}

	var out PhotoResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// ResubmitPhoto moves one of the caller's rejected photos back to pending.
func (s *Session) ResubmitPhoto(ctx context.Context, userID, photoID int64) (*ModerationResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, fmt.Sprintf("/users/%d/photos/%d/resubmit", userID, photoID), nil, nil)
	if err != nil {
		return nil, err
	}

	var out ModerationResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
