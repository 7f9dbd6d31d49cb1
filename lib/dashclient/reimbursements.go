package dashclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"pmfin-backend/models"
	financeapimodels "pmfin-backend/models/api/finance"
)

func (c *Client) GetReimbursement(ctx context.Context, id string) (financeapimodels.ReimbursementView, error) {
	return query[financeapimodels.ReimbursementView](ctx, c, reimbursementKey(id), http.MethodGet, "reimbursement/"+id, nil)
}

func (c *Client) ListReimbursements(ctx context.Context, filter financeapimodels.ReimbursementFilter) ([]financeapimodels.ReimbursementView, error) {
	key, _ := json.Marshal(filter)
	return query[[]financeapimodels.ReimbursementView](ctx, c, reimbursementKeyPrefix+"/list:"+string(key), http.MethodPost, "reimbursement/list", filter)
}

func (c *Client) SubmitReimbursement(ctx context.Context, data financeapimodels.ReimbursementData) (string, error) {
	if err := data.Validate(); err != nil {
		return "", &ValidationError{Message: err.Error()}
	}
	var id string
	if err := c.mutate(ctx, http.MethodPost, "reimbursement", data, &id, reimbursementKeyPrefix, analyticsKeyPrefix); err != nil {
		return "", err
	}
	c.toaster.Success("Reimbursement submitted")
	return id, nil
}

func (c *Client) ApproveReimbursement(ctx context.Context, id string) error {
	if err := c.mutate(ctx, http.MethodPut, "reimbursement/"+id+"/approve", nil, nil, reimbursementKeyPrefix, analyticsKeyPrefix); err != nil {
		return err
	}
	c.toaster.Success("Reimbursement approved")
	return nil
}

// RejectReimbursement requires a reason. A blank reason is rejected without a request.
func (c *Client) RejectReimbursement(ctx context.Context, id, reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return &ValidationError{Field: "reason", Message: "rejection reason is required"}
	}
	err := c.mutate(ctx, http.MethodPut, "reimbursement/"+id+"/reject", financeapimodels.RejectData{Reason: reason}, nil,
		reimbursementKeyPrefix, analyticsKeyPrefix)
	if err != nil {
		return err
	}
	c.toaster.Success("Reimbursement rejected")
	return nil
}

func (c *Client) MarkReimbursementPaid(ctx context.Context, id string) error {
	if err := c.mutate(ctx, http.MethodPut, "reimbursement/"+id+"/pay", nil, nil, reimbursementKeyPrefix, analyticsKeyPrefix); err != nil {
		return err
	}
	c.toaster.Success("Reimbursement marked as paid")
	return nil
}

func (c *Client) AttachPaymentProof(ctx context.Context, id, fileName string, file io.Reader) (financeapimodels.AttachmentView, error) {
	var resp financeapimodels.AttachmentView
	if err := c.upload(ctx, "reimbursement/"+id+"/proof", "file", fileName, file, &resp); err != nil {
		return resp, err
	}
	c.cache.Invalidate(reimbursementKeyPrefix)
	c.toaster.Success("Payment proof uploaded")
	return resp, nil
}

func (c *Client) UploadReceipt(ctx context.Context, id, fileName string, file io.Reader) (financeapimodels.AttachmentView, error) {
	var resp financeapimodels.AttachmentView
	if err := c.upload(ctx, "reimbursement/"+id+"/receipt", "file", fileName, file, &resp); err != nil {
		return resp, err
	}
	c.cache.Invalidate(reimbursementKeyPrefix)
	return resp, nil
}

// PayReimbursementWithProof marks the request paid and then uploads the proof as two calls.
// When the upload fails the request stays PAID without proof and a *models.PartialFailureError is returned.
func (c *Client) PayReimbursementWithProof(ctx context.Context, id, fileName string, file io.Reader) error {
	if err := c.MarkReimbursementPaid(ctx, id); err != nil {
		return err
	}
	if _, err := c.AttachPaymentProof(ctx, id, fileName, file); err != nil {
		return &models.PartialFailureError{
			Completed: []string{models.StepMarkPaid},
			Failed:    models.StepAttachProof,
			Err:       err,
		}
	}
	return nil
}
