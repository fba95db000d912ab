// Copyright 2020, The Qiita Development Team.

// Package qiita talks to the orchestrating host: job step updates
// while the plugin runs, and the final completion call that
// registers the produced artifact.

package qiita

import (
	"bytes"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/qiita-spots/qp-fastp-minimap2/plan"
)

// ArtifactInfo describes one artifact reported back to the host: a
// named, typed collection of output files.
type ArtifactInfo struct {
	Name  string
	Type  string
	Files []plan.Entry
}

// Client is a minimal host API client.  Calls are synchronous and
// never retried; an error leaves the job in a failed state on the
// host side.
type Client struct {
	baseURL string
	hc      *http.Client
}

// NewClient returns a client for the host at baseURL.  Hosts are
// routinely deployed with self-signed certificates, so certificate
// verification can be disabled.
func NewClient(baseURL string, insecure bool) *Client {

	hc := &http.Client{}
	if insecure {
		hc.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}

	return &Client{baseURL: baseURL, hc: hc}
}

// UpdateJobStep reports the human-readable step the job is working
// on.
func (c *Client) UpdateJobStep(jobID, msg string) error {

	payload := map[string]string{"step": msg}
	return c.post(fmt.Sprintf("/qiita_db/jobs/%s/step/", jobID), payload)
}

// CompleteJob marks the job finished on the host.  On success the
// artifacts are registered; on failure errMsg explains what went
// wrong.
func (c *Client) CompleteJob(jobID string, success bool, artifacts []ArtifactInfo, errMsg string) error {

	type artifactPayload struct {
		Name      string     `json:"name"`
		Type      string     `json:"artifact_type"`
		Filepaths [][]string `json:"filepaths"`
	}

	var aps []artifactPayload
	for _, a := range artifacts {
		ap := artifactPayload{Name: a.Name, Type: a.Type}
		for _, f := range a.Files {
			ap.Filepaths = append(ap.Filepaths, []string{f.Path, f.Role})
		}
		aps = append(aps, ap)
	}

	payload := map[string]interface{}{
		"success":   success,
		"error":     errMsg,
		"artifacts": aps,
	}

	return c.post(fmt.Sprintf("/qiita_db/jobs/%s/complete/", jobID), payload)
}

func (c *Client) post(endpoint string, payload interface{}) error {

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	resp, err := c.hc.Post(c.baseURL+endpoint, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("qiita: %s returned %s: %s", endpoint, resp.Status, msg)
	}

	return nil
}
