package apimodels

type Response struct {
	Status  string      `json:"status"`            // fail/success
	Message string      `json:"message,omitempty"` // error message
	Data    interface{} `json:"data,omitempty"`
	Paging  *Paging     `json:"paging,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

type Paging struct {
	Page     int   `json:"page"`
	Limit    int   `json:"limit"`
	RowCount int64 `json:"row_count"`
}

func NewError(message string) Response {
	return Response{
		Status:  "fail",
		Message: message,
	}
}

func NewResponse(data interface{}) Response {
	return Response{
		Status: "success",
		Data:   data,
	}
}

func NewScrollerResponse(data interface{}, page, limit int, rowCount int64) Response {
	return Response{
		Status: "success",
		Data:   data,
		Paging: &Paging{
			Page:     page,
			Limit:    limit,
			RowCount: rowCount,
		},
	}
}

type Pagination struct {
	Limit int `json:"limit" query:"limit"` // rows per page
	Page  int `json:"page" query:"page"`   // 1,2,3..
}

func (r Pagination) Validate() error {
	return nil
}

func (r Pagination) GetPage() (page, limit int) {
	page = 1
	limit = 10
	if r.Page > 0 {
		page = r.Page
	}
	if r.Limit > 0 {
		limit = r.Limit
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

func (r Pagination) Offset() int {
	page, limit := r.GetPage()
	return (page - 1) * limit
}
