package handlers

// HandlerBundle groups every handler the router wires up.
type HandlerBundle struct {
	Booking  *BookingHandler
	Contact  *ContactHandler
	ROI      *ROIHandler
	WhatsApp *WhatsAppHandler
}
