package httphandler

type (
	Product struct {
		ProductID            int64  `json:"product_id"`
		Name                 string `json:"name"`
		Description          string `json:"description,omitempty"`
		SKU                  string `json:"sku"`
		UnitOfMeasure        string `json:"unit_of_measure"`
		CurrentStock         int    `json:"current_stock"`
		ReorderThresholdDays int    `json:"reorder_threshold_days"`
		PredictedDaysLeft    *int   `json:"predicted_days_left"`
		NeedsReorder         bool   `json:"needs_reorder"`
	}

	InventoryItem struct {
		Product
		Status  string `json:"status"`
		Reorder bool   `json:"reorder"`
	}

	Alerts struct {
		OutOfStock []Product `json:"out_of_stock"`
		Low        []Product `json:"low"`
	}

	CartLine struct {
		ProductID     int64   `json:"product_id"`
		Name          string  `json:"name"`
		SKU           string  `json:"sku"`
		UnitOfMeasure string  `json:"unit_of_measure"`
		Quantity      int     `json:"quantity"`
		UnitPrice     string  `json:"unit_price"`
		LineTotal     string  `json:"line_total"`
		SupplierID    *int64  `json:"supplier_id"`
		SupplierName  *string `json:"supplier_name"`
	}

	CartView struct {
		Lines []CartLine `json:"lines"`
		Total string     `json:"total"`
	}

	CatalogProduct struct {
		ProductID        int64    `json:"product_id"`
		Name             string   `json:"name"`
		Description      string   `json:"description,omitempty"`
		SKU              string   `json:"sku"`
		UnitOfMeasure    string   `json:"unit_of_measure"`
		UnitPrice        string   `json:"unit_price"`
		Discount         *float64 `json:"discount,omitempty"`
		LastPurchaseDate *string  `json:"last_purchase_date,omitempty"`
	}

	SupplierCatalog struct {
		SupplierID    int64            `json:"supplier_id"`
		Name          string           `json:"name"`
		Type          string           `json:"type,omitempty"`
		Email         string           `json:"email,omitempty"`
		Phone         string           `json:"phone,omitempty"`
		Website       string           `json:"website,omitempty"`
		Address       string           `json:"address,omitempty"`
		Products      []CatalogProduct `json:"products"`
		OtherProducts []CatalogProduct `json:"other_products"`
	}

	OrderLine struct {
		ProductID     int64  `json:"product_id"`
		Name          string `json:"name"`
		SKU           string `json:"sku"`
		UnitOfMeasure string `json:"unit_of_measure"`
		Quantity      int    `json:"quantity"`
		UnitPrice     string `json:"unit_price"`
		SupplierID    int64  `json:"supplier_id"`
		SupplierName  string `json:"supplier_name"`
	}

	Order struct {
		OrderID     string      `json:"order_id"`
		SubmittedAt string      `json:"submitted_at"`
		Total       string      `json:"total"`
		Lines       []OrderLine `json:"lines"`
	}
)

type (
	LoginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	LoginResponse struct {
		Token     string `json:"token"`
		CompanyID int64  `json:"company_id"`
	}

	AddCartItemRequest struct {
		ProductID int64 `json:"product_id"`
	}

	PatchCartItemRequest struct {
		Quantity *int `json:"quantity,omitempty"`
		Change   *int `json:"change,omitempty"`
	}

	SetSupplierRequest struct {
		SupplierID int64 `json:"supplier_id"`
	}

	SelectCompanyRequest struct {
		CompanyID int64 `json:"company_id"`
	}

	SubmitOrderResponse struct {
		OrderID string `json:"order_id"`
	}

	ErrorResponse struct {
		Error      string  `json:"error"`
		ProductIDs []int64 `json:"product_ids,omitempty"`
		Retryable  bool    `json:"retryable,omitempty"`
	}
)
