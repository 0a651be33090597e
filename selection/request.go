package selection

import (
	"github.com/fwojciec/pagesnip"
	"github.com/fwojciec/pagesnip/csspath"
)

// Handle runs an inbound request and reports its outcome.
func (s *Selector) Handle(req pagesnip.Request) *pagesnip.Response {
	resp := &pagesnip.Response{Action: req.Action}

	var err error
	switch req.Action {
	case pagesnip.ActionStartSelection:
		s.StartSelection()
	case pagesnip.ActionStopSelection:
		s.StopSelection()
	case pagesnip.ActionSmartSelect:
		var loc *pagesnip.Location
		if loc, err = s.SmartSelect(); err == nil {
			resp.Path = csspath.Generate(loc.Element)
		}
	case pagesnip.ActionApplyPath:
		var el pagesnip.Element
		if el, err = s.ApplyPath(req.Path); err == nil {
			resp.Path = csspath.Generate(el)
		}
	default:
		err = pagesnip.Errorf(pagesnip.EINVALID, "unknown action %q", req.Action)
	}

	if err != nil {
		resp.Code = pagesnip.ErrorCode(err)
		resp.Error = pagesnip.ErrorMessage(err)
		return resp
	}
	resp.OK = true
	return resp
}
