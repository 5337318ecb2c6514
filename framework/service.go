package framework

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"time"
)

// ServiceInfo is whatever the backend reports about itself on its health endpoint. Both fields are
// optional.
type ServiceInfo struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// AwaitService polls the health endpoint at url until it answers with a 2xx status or the timeout
// elapses. Progress is written to output. A zero timeout means a single attempt.
func AwaitService(ctx context.Context, url string, timeout time.Duration, output io.Writer) (ServiceInfo, error) {
	fmt.Fprintf(output, "Connecting to backend at %s", url)

	deadline := time.Now().Add(timeout)
	for {
		fmt.Fprintf(output, ".")
		info, status, err := queryServiceInfo(ctx, url)
		if err == nil && status >= 200 && status < 300 {
			fmt.Fprintln(output)
			return info, nil
		}
		if err == nil {
			err = fmt.Errorf("backend returned status code %d", status)
		}
		if !time.Now().Before(deadline) || ctx.Err() != nil {
			fmt.Fprintln(output)
			return ServiceInfo{}, fmt.Errorf("timed out, result of last query was: %w", err)
		}
		select {
		case <-ctx.Done():
		case <-time.After(time.Millisecond * 500):
		}
	}
}

func queryServiceInfo(ctx context.Context, url string) (ServiceInfo, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ServiceInfo{}, 0, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return ServiceInfo{}, 0, err
	}
	defer resp.Body.Close()
	data, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return ServiceInfo{}, resp.StatusCode, err
	}
	var info ServiceInfo
	_ = json.Unmarshal(data, &info) // health bodies are not required to be JSON
	return info, resp.StatusCode, nil
}
