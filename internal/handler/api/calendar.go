package api

import (
	"net/http"
	"strconv"
	"time"

	"previsit-intake/internal/domain/booking"
	reqdto "previsit-intake/internal/handler/dto/request"
	resdto "previsit-intake/internal/handler/dto/response"
	"previsit-intake/internal/handler/httperr"
	"previsit-intake/internal/pkg/clock"
	"previsit-intake/internal/usecase/commands"
	"previsit-intake/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

const (
	monthLayout = "2006-01"
	dayLayout   = "2006-01-02"
)

type CalendarHandler struct {
	cmds  commands.BookingCommands
	q     queries.BookingQueries
	clock clock.Clock
}

func NewCalendarHandler(cmds commands.BookingCommands, q queries.BookingQueries, clk clock.Clock) *CalendarHandler {
	return &CalendarHandler{cmds: cmds, q: q, clock: clk}
}

// @Summary List calendar events
// @Description List bookings starting in the given month (defaults to the current month)
// @Tags calendar
// @Produce json
// @Param month query string false "Month (YYYY-MM)"
// @Success 200 {object} resdto.CalendarResponse
// @Failure 400 {object} httperr.Response
// @Router /calendar [get]
func (h *CalendarHandler) ListEvents(c *gin.Context) {
	month := c.Query("month")
	if month == "" {
		month = h.clock.Now().UTC().Format(monthLayout)
	}
	period, err := booking.ParseMonth(month)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid month", nil)
		return
	}

	views, err := h.q.ListInPeriod(c.Request.Context(), period)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	events, err := resdto.FromBookingViews(views)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.CalendarResponse{Month: month, Events: events})
}

// @Summary Check availability
// @Description Report whether a half-open time range is free and list conflicting bookings
// @Tags calendar
// @Accept json
// @Produce json
// @Param request body reqdto.AvailabilityRequest true "Time range"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Router /calendar/availability/check [post]
func (h *CalendarHandler) CheckAvailability(c *gin.Context) {
	var req reqdto.AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	availability, err := h.q.CheckAvailability(c.Request.Context(), req.Start, req.End)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	res, err := resdto.FromAvailability(availability)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Suggest free slots
// @Description Suggest free slots within the clinic day
// @Tags calendar
// @Produce json
// @Param day query string true "Day (YYYY-MM-DD, UTC)"
// @Param slot_minutes query int false "Slot length in minutes"
// @Param num_slots query int false "Maximum number of slots (default 3)"
// @Success 200 {object} resdto.SuggestionsResponse
// @Failure 400 {object} httperr.Response
// @Router /calendar/suggestions [get]
func (h *CalendarHandler) SuggestSlots(c *gin.Context) {
	day, err := time.Parse(dayLayout, c.Query("day"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid day", nil)
		return
	}
	input := queries.SuggestSlotsInput{Day: day}
	if v := c.Query("slot_minutes"); v != "" {
		if input.SlotMinutes, err = strconv.Atoi(v); err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid slot_minutes", nil)
			return
		}
	}
	if v := c.Query("num_slots"); v != "" {
		if input.NumSlots, err = strconv.Atoi(v); err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid num_slots", nil)
			return
		}
	}

	slots, err := h.q.SuggestSlots(c.Request.Context(), input)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSlotViews(day.Format(dayLayout), slots))
}

// @Summary Create booking
// @Description Atomically check for conflicts and store a booking
// @Tags calendar
// @Accept json
// @Produce json
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.CreateBookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /calendar/events [post]
func (h *CalendarHandler) CreateEvent(c *gin.Context) {
	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	b, err := h.cmds.CreateBooking(c.Request.Context(), req.ToInput())
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	res, err := resdto.FromBookingView(queries.NewBookingView(b))
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.CreateBookingResponse{
		Success: true,
		EventID: b.ID(),
		Booking: res,
	})
}

// @Summary Get booking
// @Description Get a booking by event ID
// @Tags calendar
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 404 {object} httperr.Response
// @Router /calendar/events/{id} [get]
func (h *CalendarHandler) GetEvent(c *gin.Context) {
	view, err := h.q.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	res, err := resdto.FromBookingView(view)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
