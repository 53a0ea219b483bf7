package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
)

const defaultPerPage = 500

// Query narrows a List call. Filter uses the backend's filter expression
// syntax, Expand pulls related records inline.
type Query struct {
	Filter string
	Expand string
	Sort   string
}

type listResponse struct {
	Page       int             `json:"page"`
	PerPage    int             `json:"perPage"`
	TotalItems int             `json:"totalItems"`
	Items      json.RawMessage `json:"items"`
}

// List fetches every record of a collection matching q into out, a pointer
// to a slice. Pages are walked until the collection is exhausted; the
// whole walk runs under the retry policy.
func (c *Client) List(ctx context.Context, collection string, q Query, out any) error {
	return c.do(ctx, "list "+collection, func(ctx context.Context) error {
		var pages []json.RawMessage

		for page := 1; ; page++ {
			var lr listResponse
			resp, err := c.request(ctx).
				SetQueryParams(map[string]string{
					"page":    strconv.Itoa(page),
					"perPage": strconv.Itoa(defaultPerPage),
					"filter":  q.Filter,
					"expand":  q.Expand,
					"sort":    q.Sort,
				}).
				SetResult(&lr).
				Get("/api/collections/" + collection + "/records")

			if err := check(resp, err); err != nil {
				return err
			}

			pages = append(pages, lr.Items)
			if page*lr.PerPage >= lr.TotalItems || lr.PerPage == 0 {
				break
			}
		}

		return mergePages(pages, out)
	})
}

// GetOne fetches a single record by ID into out.
func (c *Client) GetOne(ctx context.Context, collection, id string, q Query, out any) error {
	return c.do(ctx, "get "+collection, func(ctx context.Context) error {
		resp, err := c.request(ctx).
			SetQueryParam("expand", q.Expand).
			SetResult(out).
			Get("/api/collections/" + collection + "/records/" + id)
		return check(resp, err)
	})
}

// Create inserts a record. Mutations run outside the transient retry loop.
func (c *Client) Create(ctx context.Context, collection string, body, out any) error {
	return c.doOnce(ctx, "create "+collection, func(ctx context.Context) error {
		resp, err := c.request(ctx).
			SetBody(body).
			SetResult(out).
			Post("/api/collections/" + collection + "/records")
		return check(resp, err)
	})
}

// Update applies a partial patch to a record. Only the provided fields are
// written; everything else on the record is untouched.
func (c *Client) Update(ctx context.Context, collection, id string, patch map[string]any, out any) error {
	return c.doOnce(ctx, "update "+collection, func(ctx context.Context) error {
		resp, err := c.request(ctx).
			SetBody(patch).
			SetResult(out).
			Patch("/api/collections/" + collection + "/records/" + id)
		return check(resp, err)
	})
}

// Delete removes a record.
func (c *Client) Delete(ctx context.Context, collection, id string) error {
	return c.doOnce(ctx, "delete "+collection, func(ctx context.Context) error {
		resp, err := c.request(ctx).
			Delete("/api/collections/" + collection + "/records/" + id)
		return check(resp, err)
	})
}

// mergePages joins the items arrays of each page and decodes them into out.
func mergePages(pages []json.RawMessage, out any) error {
	var all []json.RawMessage
	for _, page := range pages {
		if len(page) == 0 {
			continue
		}
		var items []json.RawMessage
		if err := json.Unmarshal(page, &items); err != nil {
			return fmt.Errorf("decode records page: %w", err)
		}
		all = append(all, items...)
	}

	merged, err := json.Marshal(all)
	if err != nil {
		return fmt.Errorf("merge records pages: %w", err)
	}
	if err := json.Unmarshal(merged, out); err != nil {
		return fmt.Errorf("decode records: %w", err)
	}
	return nil
}
