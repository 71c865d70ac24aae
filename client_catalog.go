package loomclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/loomlane/loomclient/gateway"
)

// The catalog operations are the thin, stateless consumers of the gateway:
// lead capture, product management, and admin user management. They carry no
// client state of their own; reads that the storefront issues from multiple
// views at once go through the deduplicated path.

// CreateLead describes the createlead operation and its observable behavior.
func (c *Client) CreateLead(ctx context.Context, lead, out any) error {
	return c.gateway.Do(ctx, http.MethodPost, "/leads/", lead, nil, out)
}

// FetchLeads describes the fetchleads operation and its observable behavior.
func (c *Client) FetchLeads(ctx context.Context, out any) error {
	return c.gateway.Get(ctx, "/leads/", nil, out)
}

// FetchMyLeads describes the fetchmyleads operation and its observable behavior.
func (c *Client) FetchMyLeads(ctx context.Context, out any) error {
	return c.gateway.Get(ctx, "/leads/my-leads/", nil, out)
}

// UpdateLead describes the updatelead operation and its observable behavior.
func (c *Client) UpdateLead(ctx context.Context, id int64, patch, out any) error {
	return c.gateway.Do(ctx, http.MethodPatch, fmt.Sprintf("/leads/%d/", id), patch, nil, out)
}

// CreateProduct describes the createproduct operation and its observable behavior.
func (c *Client) CreateProduct(ctx context.Context, product, out any) error {
	return c.gateway.Do(ctx, http.MethodPost, "/products/", product, nil, out)
}

// FetchProducts describes the fetchproducts operation and its observable behavior.
func (c *Client) FetchProducts(ctx context.Context, params url.Values, out any) error {
	return c.gateway.Get(ctx, "/products/", params, out)
}

// FetchMyProducts describes the fetchmyproducts operation and its observable behavior.
//
// The seller dashboard is the only view that reads this listing, so it goes
// through the plain request path rather than the deduplicated one.
func (c *Client) FetchMyProducts(ctx context.Context, out any) error {
	return c.gateway.Do(ctx, http.MethodGet, "/products/my-products/", nil, nil, out)
}

// UpdateProduct describes the updateproduct operation and its observable behavior.
func (c *Client) UpdateProduct(ctx context.Context, id int64, patch, out any) error {
	return c.gateway.Do(ctx, http.MethodPatch, fmt.Sprintf("/products/%d/", id), patch, nil, out)
}

// DeleteProduct describes the deleteproduct operation and its observable behavior.
func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.gateway.Do(ctx, http.MethodDelete, fmt.Sprintf("/products/%d/", id), nil, nil, nil)
}

// UploadProductImages describes the uploadproductimages operation and its observable behavior.
//
// UploadProductImages posts the multipart form and returns the hosted URLs.
// A response acknowledging a different number of URLs than files sent fails
// with *gateway.UploadMismatchError.
func (c *Client) UploadProductImages(ctx context.Context, form *gateway.MultipartForm) ([]string, error) {
	urls, err := c.gateway.UploadMultipart(ctx, "/products/upload-image/", form)
	if err != nil {
		var mismatch *gateway.UploadMismatchError
		if errors.As(err, &mismatch) {
			c.metricInc(MetricUploadMismatch)
		}
		return nil, err
	}
	return urls, nil
}

// AdminFetchUsers describes the adminfetchusers operation and its observable behavior.
func (c *Client) AdminFetchUsers(ctx context.Context, params url.Values, out any) error {
	return c.gateway.Get(ctx, "/users/manage/", params, out)
}

// AdminUpdateUser describes the adminupdateuser operation and its observable behavior.
func (c *Client) AdminUpdateUser(ctx context.Context, id int64, patch, out any) error {
	return c.gateway.Do(ctx, http.MethodPatch, fmt.Sprintf("/users/manage/%d/", id), patch, nil, out)
}

// AdminDeleteUser describes the admindeleteuser operation and its observable behavior.
func (c *Client) AdminDeleteUser(ctx context.Context, id int64) error {
	return c.gateway.Do(ctx, http.MethodDelete, fmt.Sprintf("/users/manage/%d/", id), nil, nil, nil)
}
