package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/farefinder/internal/search"
)

// formField identifies a focusable row of the search form.
type formField int

const (
	fieldTrip formField = iota
	fieldOrigin
	fieldDestination
	fieldDeparture
	fieldReturn
	fieldAdults
	fieldChildren
	fieldInfants
	fieldCabin
	fieldSort
	fieldSubmit
	fieldCount
)

// searchForm is the editable state behind the search view.
type searchForm struct {
	trip        search.TripType
	origin      airportField
	destination airportField
	departure   textinput.Model
	ret         textinput.Model
	passengers  search.Passengers
	cabin       search.CabinClass
	sort        search.SortBy
	focus       formField
	err         string
}

func newDateInput(value time.Time) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "YYYY-MM-DD"
	ti.CharLimit = len(search.DateLayout)
	ti.Width = len(search.DateLayout) + 1
	ti.Prompt = ""
	if !value.IsZero() {
		ti.SetValue(value.Format(search.DateLayout))
	}
	return ti
}

// newSearchForm builds a form with departure tomorrow and return a week
// after that.
func newSearchForm(now time.Time, origin, destination *search.Controller, trip search.TripType, cabin search.CabinClass, sort search.SortBy) searchForm {
	return searchForm{
		trip:        trip,
		origin:      newAirportField("City or airport", origin),
		destination: newAirportField("City or airport", destination),
		departure:   newDateInput(now.AddDate(0, 0, 1)),
		ret:         newDateInput(now.AddDate(0, 0, 8)),
		passengers:  search.DefaultPassengers(),
		cabin:       cabin,
		sort:        sort,
		focus:       fieldOrigin,
	}
}

// textFocused reports whether keystrokes go to a text input.
func (f searchForm) textFocused() bool {
	switch f.focus {
	case fieldOrigin, fieldDestination, fieldDeparture, fieldReturn:
		return true
	}
	return false
}

// activeAirport returns the focused airport field, if any.
func (f *searchForm) activeAirport() *airportField {
	switch f.focus {
	case fieldOrigin:
		return &f.origin
	case fieldDestination:
		return &f.destination
	}
	return nil
}

// move shifts focus by delta, skipping the return date on one-way and
// multi-city trips.
func (f *searchForm) move(delta int) tea.Cmd {
	next := f.focus
	for {
		next = formField((int(next) + delta + int(fieldCount)) % int(fieldCount))
		if next != fieldReturn || f.trip.NeedsReturn() {
			break
		}
	}
	return f.setFocus(next)
}

func (f *searchForm) setFocus(field formField) tea.Cmd {
	f.origin.blur()
	f.destination.blur()
	f.departure.Blur()
	f.ret.Blur()
	f.focus = field

	switch field {
	case fieldOrigin:
		return f.origin.focus()
	case fieldDestination:
		return f.destination.focus()
	case fieldDeparture:
		return f.departure.Focus()
	case fieldReturn:
		return f.ret.Focus()
	}
	return nil
}

// adjust changes the value of a selector or counter row.
func (f *searchForm) adjust(delta int) {
	switch f.focus {
	case fieldTrip:
		f.trip = f.trip.Next()
	case fieldCabin:
		f.cabin = f.cabin.Next()
	case fieldSort:
		f.sort = f.sort.Next()
	case fieldAdults:
		f.step(search.Adults, delta)
	case fieldChildren:
		f.step(search.Children, delta)
	case fieldInfants:
		f.step(search.Infants, delta)
	}
}

func (f *searchForm) step(kind search.PassengerKind, delta int) {
	if delta > 0 {
		f.passengers.Increment(kind)
		return
	}
	f.passengers.Decrement(kind)
}

// swap exchanges origin and destination.
func (f *searchForm) swap() {
	origin, destination := f.origin.selected, f.destination.selected
	originText, destinationText := f.origin.input.Value(), f.destination.input.Value()

	f.origin.set(destination)
	f.destination.set(origin)
	if destination == nil {
		f.origin.input.SetValue(destinationText)
	}
	if origin == nil {
		f.destination.input.SetValue(originText)
	}
}

// updateText forwards msg to the focused text input.
func (f *searchForm) updateText(ctx context.Context, msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch f.focus {
	case fieldOrigin:
		cmd = f.origin.update(ctx, msg)
	case fieldDestination:
		cmd = f.destination.update(ctx, msg)
	case fieldDeparture:
		f.departure, cmd = f.departure.Update(msg)
	case fieldReturn:
		f.ret, cmd = f.ret.Update(msg)
	}
	return cmd
}

// build collects the form into a search.Form. Only date syntax is checked
// here; everything else is validated by search.NewSearchQuery.
func (f searchForm) build() (search.Form, error) {
	form := search.Form{
		TripType:    f.trip,
		Origin:      f.origin.selected,
		Destination: f.destination.selected,
		Passengers:  f.passengers,
		CabinClass:  f.cabin,
		SortBy:      f.sort,
	}
	if v := strings.TrimSpace(f.departure.Value()); v != "" {
		d, err := search.ParseDate(v)
		if err != nil {
			return search.Form{}, fmt.Errorf("departure: %w", err)
		}
		form.Departure = d
	}
	if f.trip.NeedsReturn() {
		if v := strings.TrimSpace(f.ret.Value()); v != "" {
			d, err := search.ParseDate(v)
			if err != nil {
				return search.Form{}, fmt.Errorf("return: %w", err)
			}
			form.Return = d
		}
	}
	return form, nil
}

// query validates the form.
func (f searchForm) query() (search.SearchQuery, error) {
	form, err := f.build()
	if err != nil {
		return search.SearchQuery{}, err
	}
	return search.NewSearchQuery(form)
}
