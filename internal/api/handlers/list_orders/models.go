package list_orders

import (
	"net/url"
	"strconv"

	"github.com/m04kA/SMC-StudioBooking/internal/service/orders/models"
)

// parseQuery разбирает ?status=&limit=&offset=
func parseQuery(q url.Values) (*models.ListOrdersRequest, error) {
	req := &models.ListOrdersRequest{}

	if status := q.Get("status"); status != "" {
		req.Status = &status
	}

	if limit := q.Get("limit"); limit != "" {
		v, err := strconv.ParseUint(limit, 10, 64)
		if err != nil {
			return nil, err
		}
		req.Limit = v
	}

	if offset := q.Get("offset"); offset != "" {
		v, err := strconv.ParseUint(offset, 10, 64)
		if err != nil {
			return nil, err
		}
		req.Offset = v
	}

	return req, nil
}
