package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warungku/warungku-api/models"
)

func TestGenerateOrderNumber(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	number, err := GenerateOrderNumber(now)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(number, "ORD-20260830-"), "got %q", number)

	seen := make(map[string]bool, 10000)
	for i := 0; i < 10000; i++ {
		n, err := GenerateOrderNumber(now)
		require.NoError(t, err)
		require.False(t, seen[n], "duplicate order number %q after %d draws", n, i)
		seen[n] = true
	}
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		name string
		from models.OrderStatus
		to   models.OrderStatus
		want bool
	}{
		{"pending to confirmed", models.OrderStatusPending, models.OrderStatusConfirmed, true},
		{"skipping states is allowed", models.OrderStatusPending, models.OrderStatusReady, true},
		{"cancel from preparing", models.OrderStatusPreparing, models.OrderStatusCancelled, true},
		{"completed is terminal", models.OrderStatusCompleted, models.OrderStatusPending, false},
		{"cancelled is terminal", models.OrderStatusCancelled, models.OrderStatusConfirmed, false},
		{"unknown target rejected", models.OrderStatusPending, models.OrderStatus("shipped"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CanTransition(tc.from, tc.to))
		})
	}
}

func TestCheckout(t *testing.T) {
	db := newTestDB(t)
	store, outlet, _, item := seedStorefront(t, db)

	require.NoError(t, db.Model(&outlet).Updates(map[string]any{
		"tax_percent":            10.0,
		"service_charge_percent": 5.0,
	}).Error)
	outlet.TaxPercent = 10
	outlet.ServiceChargePercent = 5

	table := models.Table{StoreID: store.ID, Number: "A1", QRToken: "qr-a1"}
	require.NoError(t, db.Create(&table).Error)

	t.Run("creates order, items, payment, and occupies the table", func(t *testing.T) {
		tableID := table.ID
		order, err := Checkout(db, CheckoutInput{
			StoreID:      store.ID,
			OutletID:     outlet.ID,
			TableID:      &tableID,
			CustomerName: "Budi",
			Lines:        []CartLine{{MenuItemID: item.ID, Quantity: 2}},
		})
		require.NoError(t, err)

		assert.Equal(t, models.OrderStatusPending, order.Status)
		assert.Equal(t, models.PaymentStatusUnpaid, order.PaymentStatus)
		assert.Equal(t, int64(50000), order.Subtotal)
		assert.Equal(t, int64(5000), order.Tax)
		assert.Equal(t, int64(2500), order.ServiceCharge)
		assert.Equal(t, int64(57500), order.Total)

		var itemCount int64
		require.NoError(t, db.Model(&models.OrderItem{}).Where("order_id = ?", order.ID).Count(&itemCount).Error)
		assert.Equal(t, int64(1), itemCount)

		var orderItem models.OrderItem
		require.NoError(t, db.Where("order_id = ?", order.ID).First(&orderItem).Error)
		assert.Equal(t, "Nasi Goreng", orderItem.Name)
		assert.Equal(t, int64(25000), orderItem.UnitPrice)
		assert.Equal(t, 2, orderItem.Quantity)

		var paymentCount int64
		require.NoError(t, db.Model(&models.Payment{}).Where("order_id = ?", order.ID).Count(&paymentCount).Error)
		assert.Equal(t, int64(1), paymentCount)

		var occupied models.Table
		require.NoError(t, db.First(&occupied, table.ID).Error)
		assert.True(t, occupied.IsOccupied)
	})

	t.Run("unknown item leaves no order behind", func(t *testing.T) {
		var before int64
		require.NoError(t, db.Model(&models.Order{}).Count(&before).Error)

		_, err := Checkout(db, CheckoutInput{
			StoreID:  store.ID,
			OutletID: outlet.ID,
			Lines: []CartLine{
				{MenuItemID: item.ID, Quantity: 1},
				{MenuItemID: 99999, Quantity: 1},
			},
		})
		assert.ErrorIs(t, err, ErrInvalidCart)

		var after int64
		require.NoError(t, db.Model(&models.Order{}).Count(&after).Error)
		assert.Equal(t, before, after)
	})

	t.Run("empty cart rejected", func(t *testing.T) {
		_, err := Checkout(db, CheckoutInput{StoreID: store.ID, OutletID: outlet.ID})
		assert.ErrorIs(t, err, ErrInvalidCart)
	})

	t.Run("non-positive quantity rejected", func(t *testing.T) {
		_, err := Checkout(db, CheckoutInput{
			StoreID:  store.ID,
			OutletID: outlet.ID,
			Lines:    []CartLine{{MenuItemID: item.ID, Quantity: 0}},
		})
		assert.ErrorIs(t, err, ErrInvalidCart)
	})

	t.Run("inactive outlet is not found", func(t *testing.T) {
		_, err := Checkout(db, CheckoutInput{
			StoreID:  store.ID,
			OutletID: 99999,
			Lines:    []CartLine{{MenuItemID: item.ID, Quantity: 1}},
		})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("outlet override price is charged", func(t *testing.T) {
		_, err := UpsertOutletMenuSetting(db, store.ID, outlet.ID, item.ID, true, int64Ptr(20000))
		require.NoError(t, err)
		defer func() {
			require.NoError(t, DeleteOutletMenuSetting(db, outlet.ID, item.ID))
		}()

		order, err := Checkout(db, CheckoutInput{
			StoreID:  store.ID,
			OutletID: outlet.ID,
			Lines:    []CartLine{{MenuItemID: item.ID, Quantity: 1}},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(20000), order.Subtotal)
	})

	t.Run("item hidden by override cannot be ordered", func(t *testing.T) {
		_, err := UpsertOutletMenuSetting(db, store.ID, outlet.ID, item.ID, false, nil)
		require.NoError(t, err)
		defer func() {
			require.NoError(t, DeleteOutletMenuSetting(db, outlet.ID, item.ID))
		}()

		_, err = Checkout(db, CheckoutInput{
			StoreID:  store.ID,
			OutletID: outlet.ID,
			Lines:    []CartLine{{MenuItemID: item.ID, Quantity: 1}},
		})
		assert.ErrorIs(t, err, ErrInvalidCart)
	})
}

func TestUpdateOrderStatus(t *testing.T) {
	db := newTestDB(t)
	store, outlet, _, item := seedStorefront(t, db)

	newOrder := func(t *testing.T) *models.Order {
		order, err := Checkout(db, CheckoutInput{
			StoreID:  store.ID,
			OutletID: outlet.ID,
			Lines:    []CartLine{{MenuItemID: item.ID, Quantity: 1}},
		})
		require.NoError(t, err)
		return order
	}

	t.Run("advances through the workflow", func(t *testing.T) {
		order := newOrder(t)
		updated, err := UpdateOrderStatus(db, store.ID, order.ID, models.OrderStatusReady)
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusReady, updated.Status)
	})

	t.Run("terminal orders stay terminal", func(t *testing.T) {
		order := newOrder(t)
		_, err := UpdateOrderStatus(db, store.ID, order.ID, models.OrderStatusCancelled)
		require.NoError(t, err)

		_, err = UpdateOrderStatus(db, store.ID, order.ID, models.OrderStatusConfirmed)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("cancelling a dine-in order frees the table", func(t *testing.T) {
		table := models.Table{StoreID: store.ID, Number: "C3", QRToken: "qr-c3"}
		require.NoError(t, db.Create(&table).Error)

		tableID := table.ID
		order, err := Checkout(db, CheckoutInput{
			StoreID:  store.ID,
			OutletID: outlet.ID,
			TableID:  &tableID,
			Lines:    []CartLine{{MenuItemID: item.ID, Quantity: 1}},
		})
		require.NoError(t, err)

		var occupied models.Table
		require.NoError(t, db.First(&occupied, table.ID).Error)
		require.True(t, occupied.IsOccupied)

		_, err = UpdateOrderStatus(db, store.ID, order.ID, models.OrderStatusCancelled)
		require.NoError(t, err)

		var freed models.Table
		require.NoError(t, db.First(&freed, table.ID).Error)
		assert.False(t, freed.IsOccupied)
	})

	t.Run("orders of other stores are invisible", func(t *testing.T) {
		order := newOrder(t)
		_, err := UpdateOrderStatus(db, store.ID+1, order.ID, models.OrderStatusConfirmed)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestUpdatePaymentStatus(t *testing.T) {
	db := newTestDB(t)
	store, outlet, _, item := seedStorefront(t, db)

	table := models.Table{StoreID: store.ID, Number: "B2", QRToken: "qr-b2"}
	require.NoError(t, db.Create(&table).Error)

	tableID := table.ID
	order, err := Checkout(db, CheckoutInput{
		StoreID:  store.ID,
		OutletID: outlet.ID,
		TableID:  &tableID,
		Lines:    []CartLine{{MenuItemID: item.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	t.Run("marking paid frees the table and syncs the payment row", func(t *testing.T) {
		updated, err := UpdatePaymentStatus(db, store.ID, order.ID, models.PaymentStatusPaid)
		require.NoError(t, err)
		assert.Equal(t, models.PaymentStatusPaid, updated.PaymentStatus)

		var freed models.Table
		require.NoError(t, db.First(&freed, table.ID).Error)
		assert.False(t, freed.IsOccupied)

		var payment models.Payment
		require.NoError(t, db.Where("order_id = ?", order.ID).First(&payment).Error)
		assert.Equal(t, models.PaymentStatusPaid, payment.Status)
	})

	t.Run("unknown payment status rejected", func(t *testing.T) {
		_, err := UpdatePaymentStatus(db, store.ID, order.ID, models.PaymentStatus("settled"))
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}
