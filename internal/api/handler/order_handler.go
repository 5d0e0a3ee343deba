package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strings"

	"github.com/RoyceAzure/lab/storefront/internal/api/dto"
	"github.com/RoyceAzure/lab/storefront/internal/model"
	"github.com/RoyceAzure/lab/storefront/internal/pkg/util"
	"github.com/RoyceAzure/lab/storefront/internal/service"
	"github.com/RoyceAzure/rj/api"
	er "github.com/RoyceAzure/rj/util/rj_error"
	"github.com/go-chi/chi/v5"
)

type OrderHandler struct {
	orderService service.IOrderService
}

func NewOrderHandler(orderService service.IOrderService) *OrderHandler {
	if orderService == nil {
		panic("orderService cannot be nil")
	}
	return &OrderHandler{
		orderService: orderService,
	}
}

// GetOrder 查詢單筆訂單
func (o *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")
	if orderID == "" {
		api.ErrorJSON(w, int(er.InvalidArgumentCode), errors.New("order id is required"), er.ErrStrMap[er.InvalidArgumentCode])
		return
	}

	ctx := r.Context()

	order, err := o.orderService.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotExist) {
			api.ErrorJSON(w, int(er.DataNotExistsCode), err, er.ErrStrMap[er.DataNotExistsCode])
		} else {
			api.ErrorJSON(w, int(er.InternalErrorCode), err, er.ErrStrMap[er.InternalErrorCode])
		}
		return
	}

	api.SuccessJSON(w, convertOrderModelToDTO(order), nil)
}

// CreateCODOrder 建立貨到付款訂單
// 手續費與預計送達日由伺服端計算，不信任請求內容
func (o *OrderHandler) CreateCODOrder(w http.ResponseWriter, r *http.Request) {
	var codOrderDTO dto.CODOrderDTO
	if err := json.NewDecoder(r.Body).Decode(&codOrderDTO); err != nil {
		api.ErrorJSON(w, int(er.BadRequestCode), err, er.ErrStrMap[er.BadRequestCode])
		return
	}

	if fieldErrs := codOrderDTO.CustomerInfo.Validate(); len(fieldErrs) > 0 {
		api.ErrorJSON(w, int(er.InvalidArgumentCode), errors.New(joinFieldErrors(fieldErrs)), er.ErrStrMap[er.InvalidArgumentCode])
		return
	}
	if len(codOrderDTO.Items) == 0 {
		api.ErrorJSON(w, int(er.InvalidArgumentCode), errors.New("order items are required"), er.ErrStrMap[er.InvalidArgumentCode])
		return
	}
	if codOrderDTO.Amount.IsZero() || codOrderDTO.Amount.IsNegative() {
		api.ErrorJSON(w, int(er.InvalidArgumentCode), errors.New("amount must be positive"), er.ErrStrMap[er.InvalidArgumentCode])
		return
	}

	ctx := r.Context()

	codOrder, err := o.orderService.ProcessCODOrder(ctx, codOrderDTO.Amount, codOrderDTO.CustomerInfo, convertItemDTOsToCartLines(codOrderDTO.Items))
	if err != nil {
		api.ErrorJSON(w, int(er.InternalErrorCode), err, er.ErrStrMap[er.InternalErrorCode])
		return
	}

	api.SuccessJSON(w, convertCODOrderToResponse(codOrder), nil)
}

func convertCODOrderToResponse(codOrder *model.CODOrder) dto.CODOrderResponse {
	items := make([]dto.OrderItemDTO, 0, len(codOrder.Items))
	for _, item := range codOrder.Items {
		items = append(items, dto.OrderItemDTO{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Image:     item.Image,
		})
	}

	return dto.CODOrderResponse{
		OrderID:            codOrder.OrderID,
		Amount:             codOrder.Amount,
		AmountDisplay:      util.FormatAmount(codOrder.Amount),
		HandlingFee:        codOrder.HandlingFee,
		HandlingFeeDisplay: util.FormatAmount(codOrder.HandlingFee),
		TotalAmount:        codOrder.TotalAmount,
		TotalAmountDisplay: util.FormatAmount(codOrder.TotalAmount),
		CustomerInfo:       codOrder.CustomerInfo,
		Items:              items,
		Status:             codOrder.Status,
		EstimatedDelivery:  codOrder.EstimatedDelivery,
	}
}

func convertOrderModelToDTO(order *model.Order) dto.OrderDTO {
	items := make([]dto.OrderItemDTO, 0, len(order.OrderItems))
	for _, item := range order.OrderItems {
		items = append(items, dto.OrderItemDTO{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Image:     item.Image,
		})
	}
	return dto.OrderDTO{
		OrderID:       order.OrderID,
		Amount:        order.Amount,
		Currency:      order.Currency,
		CustomerName:  order.CustomerName,
		CustomerEmail: order.CustomerEmail,
		PaymentMethod: string(order.PaymentMethod),
		Status:        string(order.Status),
		OrderDate:     order.OrderDate,
		Items:         items,
	}
}

func convertItemDTOsToCartLines(items []dto.OrderItemDTO) []model.CartLine {
	lines := make([]model.CartLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, model.CartLine{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Image:     item.Image,
		})
	}
	return lines
}

func joinFieldErrors(fieldErrs map[string]string) string {
	fields := make([]string, 0, len(fieldErrs))
	for field := range fieldErrs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	msgs := make([]string, 0, len(fields))
	for _, field := range fields {
		msgs = append(msgs, fieldErrs[field])
	}
	return strings.Join(msgs, "; ")
}
