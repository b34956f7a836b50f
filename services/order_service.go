package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/jecakings/garment-api/config"
	"github.com/jecakings/garment-api/models"
)

// Sentinel errors for the order lifecycle. Controllers map these onto HTTP
// status codes.
var (
	// ErrOrderNotFound is returned when no order matches the id, or the
	// order is not visible to the caller.
	ErrOrderNotFound = errors.New("order not found")
	// ErrNoUpdatableFields is returned when an update request carries no
	// recognized field.
	ErrNoUpdatableFields = errors.New("no updatable fields in request")
	// ErrIllegalTransition is returned when the requested status change is
	// not an edge of the lifecycle from the order's current status.
	ErrIllegalTransition = errors.New("illegal status transition")
	// ErrForbidden is returned when the actor's role may not perform the
	// requested change.
	ErrForbidden = errors.New("insufficient permissions")
	// ErrInvalidInput is wrapped around field validation failures.
	ErrInvalidInput = errors.New("invalid input")
)

// Actor is the authenticated principal a request acts as.
type Actor struct {
	UserID    uint
	Role      string
	StaffType string
}

// CreateOrderInput carries the fields a customer submits with a new order.
type CreateOrderInput struct {
	CustomerID      uint
	OrderType       string
	Description     *string
	AppointmentDate *time.Time
	Measurements    map[string]string
	ImageURLs       []string
	Priority        *string
	Notes           *string
}

// OrderUpdate is the partial field set of an update request. Only non-nil
// fields are written; absence means "leave unchanged", never "set to null".
type OrderUpdate struct {
	Status         *string
	TotalAmount    *float64
	VendorID       *uint
	StaffID        *uint
	CommissionRate *float64
	Notes          *string
	Priority       *string
	ReadyDate      *time.Time
	FittingDate    *time.Time
	PaidAmount     *float64
}

// OrderFilter narrows a list read. Filters combine with AND.
type OrderFilter struct {
	CustomerID *uint
	Status     string
	OrderType  string
}

// OrderDetail is an order enriched with the names of its related users.
// Absent relations render as null.
type OrderDetail struct {
	models.Order  `gorm:"embedded"`
	CustomerName  *string `json:"customer_name"`
	CustomerEmail *string `json:"customer_email"`
	CustomerPhone *string `json:"customer_phone"`
	StaffName     *string `json:"staff_name"`
	VendorName    *string `json:"vendor_name"`
}

// OrderService validates, authorizes and persists order state transitions,
// and maintains the audit trail.
type OrderService struct {
	log *zap.Logger
}

var orderServiceInstance *OrderService

// InitOrderService initializes the order service
func InitOrderService(log *zap.Logger) *OrderService {
	orderServiceInstance = &OrderService{log: log}
	return orderServiceInstance
}

// GetOrderService returns the order service instance
func GetOrderService() *OrderService {
	if orderServiceInstance == nil {
		orderServiceInstance = &OrderService{log: zap.NewNop()}
	}
	return orderServiceInstance
}

// SetOrderService sets the order service instance (primarily for testing)
func SetOrderService(s *OrderService) {
	orderServiceInstance = s
}

func (s *OrderService) db() *gorm.DB {
	return config.GetDB()
}

// Create opens a new order for the acting customer. Orders always start
// pending; an appointment-type order also gets a calendar entry, in the same
// transaction as the order row and its audit record.
func (s *OrderService) Create(actor Actor, in CreateOrderInput) (*models.Order, error) {
	if actor.Role != models.RoleCustomer {
		return nil, ErrForbidden
	}
	if in.CustomerID != 0 && in.CustomerID != actor.UserID {
		return nil, ErrForbidden
	}
	if !models.IsValidOrderType(in.OrderType) {
		return nil, fmt.Errorf("%w: unknown order type %q", ErrInvalidInput, in.OrderType)
	}

	priority := models.PriorityMedium
	if in.Priority != nil {
		if !models.IsValidPriority(*in.Priority) {
			return nil, fmt.Errorf("%w: unknown priority %q", ErrInvalidInput, *in.Priority)
		}
		priority = *in.Priority
	}

	order := models.Order{
		CustomerID:      actor.UserID,
		OrderType:       in.OrderType,
		Status:          models.StatusPending,
		Priority:        priority,
		Description:     in.Description,
		Notes:           in.Notes,
		AppointmentDate: in.AppointmentDate,
	}
	if in.Measurements != nil {
		b, err := json.Marshal(in.Measurements)
		if err != nil {
			return nil, fmt.Errorf("%w: measurements: %v", ErrInvalidInput, err)
		}
		serialized := string(b)
		order.Measurements = &serialized
	}
	if len(in.ImageURLs) > 0 {
		b, err := json.Marshal(in.ImageURLs)
		if err != nil {
			return nil, fmt.Errorf("%w: image urls: %v", ErrInvalidInput, err)
		}
		serialized := string(b)
		order.ImageURLs = &serialized
	}

	err := s.db().Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		if err := appendHistory(tx, order.ID, actor.UserID, "order_created", map[string]interface{}{
			"order_type": order.OrderType,
		}); err != nil {
			return err
		}
		if order.OrderType == models.OrderTypeAppointment {
			appointment := models.Appointment{
				CustomerID:  order.CustomerID,
				OrderID:     &order.ID,
				ScheduledAt: order.AppointmentDate,
			}
			if err := tx.Create(&appointment).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("order created",
		zap.Uint("order_id", order.ID),
		zap.Uint("customer_id", order.CustomerID),
		zap.String("order_type", order.OrderType))
	return &order, nil
}

func (s *OrderService) detailQuery() *gorm.DB {
	return s.db().Model(&models.Order{}).
		Select("orders.*, c.name AS customer_name, c.email AS customer_email, c.phone AS customer_phone, s.name AS staff_name, v.name AS vendor_name").
		Joins("LEFT JOIN users c ON c.id = orders.customer_id").
		Joins("LEFT JOIN users s ON s.id = orders.staff_id").
		Joins("LEFT JOIN users v ON v.id = orders.vendor_id")
}

// Get returns one enriched order. Customers can only read their own orders;
// anything else looks like a missing row to them.
func (s *OrderService) Get(actor Actor, id uint) (*OrderDetail, error) {
	var detail OrderDetail
	res := s.detailQuery().Where("orders.id = ?", id).Scan(&detail)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrOrderNotFound
	}
	if actor.Role == models.RoleCustomer && detail.CustomerID != actor.UserID {
		return nil, ErrOrderNotFound
	}
	return &detail, nil
}

// List returns enriched orders matching the filter, newest first. Customer
// callers are always scoped to their own orders regardless of the supplied
// filters.
func (s *OrderService) List(actor Actor, f OrderFilter) ([]OrderDetail, error) {
	q := s.detailQuery()
	if actor.Role == models.RoleCustomer {
		q = q.Where("orders.customer_id = ?", actor.UserID)
	} else if f.CustomerID != nil {
		q = q.Where("orders.customer_id = ?", *f.CustomerID)
	}
	if f.Status != "" {
		q = q.Where("orders.status = ?", f.Status)
	}
	if f.OrderType != "" {
		q = q.Where("orders.order_type = ?", f.OrderType)
	}

	details := []OrderDetail{}
	if err := q.Order("orders.created_at DESC").Scan(&details).Error; err != nil {
		return nil, err
	}
	return details, nil
}

// Update applies a partial field set to an order. Only fields from the fixed
// allow-list are written. Status changes are checked against the transition
// table before anything is persisted; the audit record is appended in the
// same transaction, so either both survive or neither does. Returns the
// names of the written columns.
func (s *OrderService) Update(actor Actor, id uint, upd OrderUpdate) (changed []string, err error) {
	err = s.db().Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		if actor.Role == models.RoleCustomer {
			if order.CustomerID != actor.UserID {
				return ErrOrderNotFound
			}
		} else if !models.IsStaffRole(actor.Role) {
			return ErrForbidden
		}

		// Typed setters over the fixed allow-list. Caller-supplied keys are
		// never interpolated into the query.
		updates := map[string]interface{}{}
		if upd.TotalAmount != nil {
			updates["total_amount"] = *upd.TotalAmount
		}
		if upd.VendorID != nil {
			updates["vendor_id"] = *upd.VendorID
		}
		if upd.StaffID != nil {
			updates["staff_id"] = *upd.StaffID
		}
		if upd.CommissionRate != nil {
			updates["commission_rate"] = *upd.CommissionRate
		}
		if upd.Notes != nil {
			updates["notes"] = *upd.Notes
		}
		if upd.Priority != nil {
			if !models.IsValidPriority(*upd.Priority) {
				return fmt.Errorf("%w: unknown priority %q", ErrInvalidInput, *upd.Priority)
			}
			updates["priority"] = *upd.Priority
		}
		if upd.ReadyDate != nil {
			updates["ready_date"] = *upd.ReadyDate
		}
		if upd.FittingDate != nil {
			updates["fitting_date"] = *upd.FittingDate
		}
		if upd.PaidAmount != nil {
			updates["paid_amount"] = *upd.PaidAmount
		}
		if upd.Status != nil && !models.IsValidStatus(*upd.Status) {
			return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *upd.Status)
		}

		if len(updates) == 0 && upd.Status == nil {
			return ErrNoUpdatableFields
		}

		// The only move a customer has is the price counter-offer on their
		// own order.
		if actor.Role == models.RoleCustomer {
			if upd.Status == nil || *upd.Status != models.StatusNegotiated || len(updates) > 0 {
				return ErrForbidden
			}
		}

		// Staff assignment is reserved to the superadmin.
		if upd.StaffID != nil && actor.Role != models.RoleSuperadmin {
			return ErrForbidden
		}

		// Resolve the target status: an explicit status wins, otherwise the
		// submitted fields imply the transition.
		target := order.Status
		switch {
		case upd.Status != nil:
			target = *upd.Status
		case upd.PaidAmount != nil:
			// decided by the payment threshold below
		case upd.VendorID != nil:
			target = models.StatusAssignedToVendor
		case upd.ReadyDate != nil:
			target = models.StatusReadyForFitting
		case upd.FittingDate != nil:
			target = models.StatusFittingScheduled
		case upd.TotalAmount != nil:
			target = models.StatusPriced
		}

		// Recording a payment requires a priced order with a known total.
		// paid_amount >= total_amount moves the order to paid; anything less
		// leaves it priced.
		if upd.PaidAmount != nil {
			if order.Status != models.StatusPriced {
				return ErrIllegalTransition
			}
			if order.TotalAmount == nil {
				return fmt.Errorf("%w: cannot record payment before the order is priced", ErrInvalidInput)
			}
			if upd.Status == nil {
				if *upd.PaidAmount >= *order.TotalAmount {
					target = models.StatusPaid
				} else {
					target = models.StatusPriced
				}
			}
		}

		// A move to paid is only honored once the money covers the total.
		if target == models.StatusPaid && target != order.Status {
			effectivePaid := order.PaidAmount
			if upd.PaidAmount != nil {
				effectivePaid = *upd.PaidAmount
			}
			if order.TotalAmount == nil || effectivePaid < *order.TotalAmount {
				return ErrIllegalTransition
			}
		}

		action := "order_updated"
		if target == order.Status {
			// Plain field write: still blocked once the order is terminal.
			if models.IsTerminalStatus(order.Status) {
				return ErrIllegalTransition
			}
			if upd.StaffID != nil {
				action = "staff_assigned"
			}
		} else {
			legal, permitted := models.CheckTransition(order.Status, target, actor.Role)
			if !legal {
				return ErrIllegalTransition
			}
			if !permitted {
				return ErrForbidden
			}
			updates["status"] = target
		}

		switch {
		case target == models.StatusCancelled:
			action = "order_cancelled"
		case upd.PaidAmount != nil:
			action = "payment_recorded"
		case upd.VendorID != nil:
			action = "vendor_assigned"
		case target == models.StatusNegotiated:
			action = "price_negotiated"
		case upd.TotalAmount != nil:
			action = "price_set"
		}

		updates["updated_at"] = time.Now()
		res := tx.Model(&models.Order{}).Where("id = ?", order.ID).Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// The row vanished between read and write; roll back so no
			// audit record survives.
			return ErrOrderNotFound
		}

		changed = make([]string, 0, len(updates))
		for col := range updates {
			if col != "updated_at" {
				changed = append(changed, col)
			}
		}
		sort.Strings(changed)

		details := map[string]interface{}{"updated_fields": changed}
		if action == "order_cancelled" {
			details["reason"] = "Admin cancellation"
		}
		if err := appendHistory(tx, order.ID, actor.UserID, action, details); err != nil {
			return err
		}

		if action == "payment_recorded" {
			delta := *upd.PaidAmount - order.PaidAmount
			if delta > 0 {
				payment := models.Payment{
					OrderID:     order.ID,
					Amount:      delta,
					Status:      "recorded",
					PaymentDate: time.Now(),
				}
				if err := tx.Create(&payment).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("order updated",
		zap.Uint("order_id", id),
		zap.Uint("actor_id", actor.UserID),
		zap.Strings("fields", changed))
	return changed, nil
}

// Cancel soft-deletes an order: status moves to cancelled, the row and its
// history stay. Superadmin only.
func (s *OrderService) Cancel(actor Actor, id uint) error {
	if actor.Role != models.RoleSuperadmin {
		return ErrForbidden
	}
	cancelled := models.StatusCancelled
	_, err := s.Update(actor, id, OrderUpdate{Status: &cancelled})
	return err
}

// History returns the audit trail of an order, oldest first. Customers can
// only read the trail of their own orders.
func (s *OrderService) History(actor Actor, id uint) ([]models.OrderHistory, error) {
	var order models.Order
	if err := s.db().First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if actor.Role == models.RoleCustomer && order.CustomerID != actor.UserID {
		return nil, ErrOrderNotFound
	}

	history := []models.OrderHistory{}
	if err := s.db().Where("order_id = ?", id).Order("created_at ASC, id ASC").Find(&history).Error; err != nil {
		return nil, err
	}
	return history, nil
}

func appendHistory(tx *gorm.DB, orderID, userID uint, action string, details map[string]interface{}) error {
	var serialized *string
	if details != nil {
		b, err := json.Marshal(details)
		if err != nil {
			return err
		}
		s := string(b)
		serialized = &s
	}
	return tx.Create(&models.OrderHistory{
		OrderID: orderID,
		UserID:  userID,
		Action:  action,
		Details: serialized,
	}).Error
}
