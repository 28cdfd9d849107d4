package handlers

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Freeeeeet/restaurant_booking_bot/internal/availability"
	"github.com/Freeeeeet/restaurant_booking_bot/internal/model"
)

// Форматы callback data. Telegram ограничивает их 64 байтами.
const (
	CallbackNoop = "noop"

	CallbackRestaurant = "rest:"   // rest:<restaurant_id>
	CallbackDate       = "bdate:"  // bdate:<restaurant_id>:<YYYY-MM-DD>
	CallbackParty      = "bparty:" // bparty:<restaurant_id>:<YYYY-MM-DD>:<party>
	CallbackSlot       = "bslot:"  // bslot:<restaurant_id>:<YYYY-MM-DD>:<party>:<HHMM>

	CallbackSkipRequests = "bskip"
	CallbackConfirm      = "bconfirm"
	CallbackAbort        = "babort"

	CallbackCancelBooking = "mycancel:"   // mycancel:<booking_id>
	CallbackConfirmCancel = "mycancelok:" // mycancelok:<booking_id>

	CallbackSetStatus = "status:" // status:<booking_id>:<status>
	CallbackStaff     = "staff:"  // staff:<action>:<restaurant_id>
)

// Действия сотрудника
const (
	StaffActionToday     = "today"
	StaffActionStats     = "stats"
	StaffActionFloorPlan = "floorplan"
	StaffActionSetHours  = "sethours"
)

// bookingRef шаг выбора слота; заполнены поля, пройденные к этому шагу
type bookingRef struct {
	RestaurantID int64
	Date         string
	PartySize    int
	Time         string
}

func (r bookingRef) dateData(date string) string {
	return fmt.Sprintf("%s%d:%s", CallbackDate, r.RestaurantID, date)
}

func (r bookingRef) partyData(party int) string {
	return fmt.Sprintf("%s%d:%s:%d", CallbackParty, r.RestaurantID, r.Date, party)
}

func (r bookingRef) slotData(slotTime string) string {
	return fmt.Sprintf("%s%d:%s:%d:%s", CallbackSlot, r.RestaurantID, r.Date, r.PartySize, strings.Replace(slotTime, ":", "", 1))
}

// parseBookingRef разбирает rest:, bdate:, bparty: и bslot:
func parseBookingRef(data string) (bookingRef, error) {
	var prefix string
	var parts int
	switch {
	case strings.HasPrefix(data, CallbackRestaurant):
		prefix, parts = CallbackRestaurant, 1
	case strings.HasPrefix(data, CallbackDate):
		prefix, parts = CallbackDate, 2
	case strings.HasPrefix(data, CallbackParty):
		prefix, parts = CallbackParty, 3
	case strings.HasPrefix(data, CallbackSlot):
		prefix, parts = CallbackSlot, 4
	default:
		return bookingRef{}, fmt.Errorf("%w: %q", ErrInvalidCallback, data)
	}

	args, err := callbackArgs(data, prefix, parts)
	if err != nil {
		return bookingRef{}, err
	}

	var ref bookingRef
	if ref.RestaurantID, err = parseID(args[0]); err != nil {
		return bookingRef{}, err
	}
	if parts > 1 {
		d, err := availability.ParseDate(args[1], time.UTC)
		if err != nil {
			return bookingRef{}, fmt.Errorf("%w: %v", ErrInvalidCallback, err)
		}
		ref.Date = availability.DateString(d)
	}
	if parts > 2 {
		party, err := strconv.Atoi(args[2])
		if err != nil || party < 1 {
			return bookingRef{}, fmt.Errorf("%w: party %q", ErrInvalidCallback, args[2])
		}
		ref.PartySize = party
	}
	if parts > 3 {
		if ref.Time, err = decodeSlotTime(args[3]); err != nil {
			return bookingRef{}, err
		}
	}
	return ref, nil
}

// decodeSlotTime "1930" → "19:30"
func decodeSlotTime(value string) (string, error) {
	if len(value) != 4 {
		return "", fmt.Errorf("%w: time %q", ErrInvalidCallback, value)
	}
	normalized, err := availability.NormalizeTime(value[:2] + ":" + value[2:])
	if err != nil {
		return "", fmt.Errorf("%w: time %q", ErrInvalidCallback, value)
	}
	return normalized, nil
}

func statusData(bookingID int64, status model.BookingStatus) string {
	return fmt.Sprintf("%s%d:%s", CallbackSetStatus, bookingID, status)
}

// parseStatusData разбирает status:<booking_id>:<status>
func parseStatusData(data string) (int64, model.BookingStatus, error) {
	args, err := callbackArgs(data, CallbackSetStatus, 2)
	if err != nil {
		return 0, "", err
	}
	id, err := parseID(args[0])
	if err != nil {
		return 0, "", err
	}
	status := model.BookingStatus(args[1])
	if !status.IsValid() {
		return 0, "", fmt.Errorf("%w: status %q", ErrInvalidCallback, args[1])
	}
	return id, status, nil
}

func staffData(action string, restaurantID int64) string {
	return fmt.Sprintf("%s%s:%d", CallbackStaff, action, restaurantID)
}

// parseStaffData разбирает staff:<action>:<restaurant_id>
func parseStaffData(data string) (string, int64, error) {
	args, err := callbackArgs(data, CallbackStaff, 2)
	if err != nil {
		return "", 0, err
	}
	switch args[0] {
	case StaffActionToday, StaffActionStats, StaffActionFloorPlan, StaffActionSetHours:
	default:
		return "", 0, fmt.Errorf("%w: action %q", ErrInvalidCallback, args[0])
	}
	id, err := parseID(args[1])
	if err != nil {
		return "", 0, err
	}
	return args[0], id, nil
}

// parseCheckInArg разбирает аргумент /checkin: строку из QR booking:<id>:<code> или сам код
func parseCheckInArg(text string) (int64, string, error) {
	arg := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(text), "/checkin"))
	if arg == "" {
		return 0, "", fmt.Errorf("%w: empty check-in code", ErrInvalidCallback)
	}
	if !strings.HasPrefix(arg, "booking:") {
		if strings.Contains(arg, ":") || strings.ContainsAny(arg, " \t") {
			return 0, "", fmt.Errorf("%w: code %q", ErrInvalidCallback, arg)
		}
		return 0, strings.ToUpper(arg), nil
	}
	args, err := callbackArgs(arg, "booking:", 2)
	if err != nil {
		return 0, "", err
	}
	id, err := parseID(args[0])
	if err != nil {
		return 0, "", err
	}
	if args[1] == "" {
		return 0, "", fmt.Errorf("%w: empty check-in code", ErrInvalidCallback)
	}
	return id, strings.ToUpper(args[1]), nil
}

// parseIDData разбирает "<prefix><id>"
func parseIDData(data, prefix string) (int64, error) {
	args, err := callbackArgs(data, prefix, 1)
	if err != nil {
		return 0, err
	}
	return parseID(args[0])
}

func callbackArgs(data, prefix string, n int) ([]string, error) {
	rest, ok := strings.CutPrefix(data, prefix)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCallback, data)
	}
	args := strings.Split(rest, ":")
	if len(args) != n {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCallback, data)
	}
	return args, nil
}

func parseID(value string) (int64, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%w: id %q", ErrInvalidCallback, value)
	}
	return id, nil
}
