package sse

import (
	"time"

	"github.com/google/uuid"
)

// CatalogNotifier is the interface services use to push catalog events to
// the dashboard.
type CatalogNotifier interface {
	NotifySelectionConfirmed(vendorID, productID, productName string)
	NotifySelectionFailed(vendorID, productID, message string)
	NotifyCatalogPage(vendorID string, version uint64, page any)
}

// HubNotifier implements CatalogNotifier using the SSE Hub. Success and
// failure notices are transient: a dismiss event follows after noticeTTL.
type HubNotifier struct {
	hub       *Hub
	noticeTTL time.Duration
}

// NewHubNotifier creates a notifier backed by the given Hub.
func NewHubNotifier(hub *Hub, noticeTTL time.Duration) *HubNotifier {
	return &HubNotifier{hub: hub, noticeTTL: noticeTTL}
}

func (n *HubNotifier) NotifySelectionConfirmed(vendorID, productID, productName string) {
	n.notice(vendorID, &Event{
		Event:       EventSelectionConfirmed,
		ProductID:   productID,
		ProductName: productName,
		Message:     "Successfully added \"" + productName + "\" to your inventory!",
	})
}

func (n *HubNotifier) NotifySelectionFailed(vendorID, productID, message string) {
	n.notice(vendorID, &Event{
		Event:     EventSelectionFailed,
		ProductID: productID,
		Message:   message,
	})
}

func (n *HubNotifier) NotifyCatalogPage(vendorID string, version uint64, page any) {
	if n.hub.VendorClientCount(vendorID) == 0 {
		return
	}
	n.hub.SendToVendor(vendorID, &Event{
		Event:     EventCatalogPage,
		Version:   version,
		Page:      page,
		Timestamp: time.Now(),
	})
}

// notice sends a transient event and schedules its dismissal.
func (n *HubNotifier) notice(vendorID string, event *Event) {
	if n.hub.VendorClientCount(vendorID) == 0 {
		return
	}
	event.NoticeID = uuid.New().String()[:8]
	event.Timestamp = time.Now()
	n.hub.SendToVendor(vendorID, event)

	noticeID := event.NoticeID
	time.AfterFunc(n.noticeTTL, func() {
		n.hub.SendToVendor(vendorID, &Event{
			Event:     EventNoticeDismiss,
			NoticeID:  noticeID,
			Timestamp: time.Now(),
		})
	})
}

// NopNotifier is a no-op implementation for when SSE is not needed.
type NopNotifier struct{}

func (NopNotifier) NotifySelectionConfirmed(vendorID, productID, productName string) {}
func (NopNotifier) NotifySelectionFailed(vendorID, productID, message string)        {}
func (NopNotifier) NotifyCatalogPage(vendorID string, version uint64, page any)      {}
