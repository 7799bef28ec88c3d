package restclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// SelectRange returns rows from..to (inclusive, zero based) of table with all
// columns selected. A range past the end of the table yields no rows.
func (c *Client) SelectRange(ctx context.Context, table string, from, to int) ([]Row, error) {
	if from < 0 || to < from {
		return nil, fmt.Errorf("invalid range %d-%d", from, to)
	}
	params := url.Values{}
	params.Set("select", "*")
	params.Set("offset", strconv.Itoa(from))
	params.Set("limit", strconv.Itoa(to-from+1))
	req, err := c.newRequest(ctx, http.MethodGet, c.buildURL(restPath, table, params), nil)
	if err != nil {
		return nil, err
	}
	res, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK, http.StatusPartialContent:
	case http.StatusRequestedRangeNotSatisfiable:
		io.Copy(io.Discard, res.Body)
		return nil, nil
	default:
		return nil, decodeAPIError(res)
	}
	rows, err := DecodeRows(res.Body)
	if err != nil {
		return nil, fmt.Errorf("error decoding %s rows %d-%d: %w", table, from, to, err)
	}
	return rows, nil
}

// Count returns the exact number of rows of table visible to the current
// credentials, read from the Content-Range header of a HEAD request.
func (c *Client) Count(ctx context.Context, table string) (int64, error) {
	params := url.Values{}
	params.Set("select", "*")
	req, err := c.newRequest(ctx, http.MethodHead, c.buildURL(restPath, table, params), nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Prefer", "count=exact")
	res, err := c.do(req)
	if err != nil {
		return 0, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK && res.StatusCode != http.StatusPartialContent {
		return 0, &APIError{Status: res.StatusCode}
	}
	return parseContentRange(res.Header.Get("Content-Range"))
}

// parseContentRange extracts the total from "0-24/25" or "*/0".
func parseContentRange(v string) (int64, error) {
	i := strings.LastIndexByte(v, '/')
	if i < 0 || i == len(v)-1 {
		return 0, fmt.Errorf("malformed Content-Range %q", v)
	}
	total := v[i+1:]
	if total == "*" {
		return 0, fmt.Errorf("server did not report a row count (Content-Range %q)", v)
	}
	n, err := strconv.ParseInt(total, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed Content-Range %q: %w", v, err)
	}
	return n, nil
}
