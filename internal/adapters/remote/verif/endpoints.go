package verif

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"

	perr "verihub/internal/platform/errors"
)

// PostMetadata rides along with every analyze call
type PostMetadata struct {
	Author          string  `json:"author,omitempty"`
	DisplayName     string  `json:"displayName,omitempty"`
	Timestamp       string  `json:"timestamp,omitempty"`
	Permalink       string  `json:"permalink,omitempty"`
	Title           string  `json:"title,omitempty"`
	DurationSeconds float64 `json:"durationSeconds,omitempty"`
}

// AnalyzeText posts raw text for analysis
func (c *Client) AnalyzeText(ctx context.Context, text, platform string, meta PostMetadata) (*Report, Headers, error) {
	body := struct {
		Text     string       `json:"text"`
		Platform string       `json:"platform"`
		Metadata PostMetadata `json:"metadata"`
	}{Text: text, Platform: platform, Metadata: meta}
	return c.postJSON(ctx, "/analyze-text", body)
}

// AnalyzeVideo posts a video URL for analysis
func (c *Client) AnalyzeVideo(ctx context.Context, url, platform string, meta PostMetadata) (*Report, Headers, error) {
	return c.postMultipart(ctx, "/analyze-video", func(mw *multipart.Writer) error {
		if err := mw.WriteField("url", url); err != nil {
			return err
		}
		if err := mw.WriteField("platform", platform); err != nil {
			return err
		}
		return writeMetaField(mw, meta)
	})
}

// AnalyzeImage posts a captured screenshot for analysis
func (c *Client) AnalyzeImage(ctx context.Context, image []byte, platform string, meta PostMetadata) (*Report, Headers, error) {
	if len(image) == 0 {
		return nil, Headers{}, perr.InvalidArgf("empty image payload")
	}
	return c.postMultipart(ctx, "/analyze-image", func(mw *multipart.Writer) error {
		fw, err := mw.CreateFormFile("image", "screenshot.png")
		if err != nil {
			return err
		}
		if _, err := fw.Write(image); err != nil {
			return err
		}
		if err := mw.WriteField("platform", platform); err != nil {
			return err
		}
		return writeMetaField(mw, meta)
	})
}

// Chat asks a follow up question about a completed analysis
func (c *Client) Chat(ctx context.Context, analysisID, message string) (*ChatReply, error) {
	body := struct {
		AnalysisID string `json:"analysis_id"`
		Message    string `json:"message"`
	}{AnalysisID: analysisID, Message: message}

	raw, err := json.Marshal(body)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "verif encode body failed")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.BaseURL+"/chat", bytes.NewReader(raw))
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "verif new request failed")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "verif request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(resp)
	}
	var reply ChatReply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "verif decode reply failed")
	}
	return &reply, nil
}

func writeMetaField(mw *multipart.Writer, meta PostMetadata) error {
	raw, err := json.Marshal(meta)
	if err != nil {
		return err
	}
	return mw.WriteField("metadata", string(raw))
}
