package opentherm

import (
	"context"

	"github.com/otlink/opentherm/frame"
	"github.com/otlink/opentherm/link"
)

// StatusResponse decodes the flag8 bits of a MsgStatus response.
type StatusResponse struct {
	raw uint16
}

func (s StatusResponse) bit(n uint) bool { return s.raw&(1<<n) != 0 }

// Fault reports the boiler's fault-indication bit.
func (s StatusResponse) Fault() bool { return s.bit(0) }

// CHActive reports whether central heating is currently active.
func (s StatusResponse) CHActive() bool { return s.bit(1) }

// DHWActive reports whether domestic hot water is currently active.
func (s StatusResponse) DHWActive() bool { return s.bit(2) }

// Flame reports whether the burner flame is currently on.
func (s StatusResponse) Flame() bool { return s.bit(3) }

// Cooling reports whether the cooling mode is currently active.
func (s StatusResponse) Cooling() bool { return s.bit(4) }

// Diagnostic reports the boiler's diagnostic-event indication bit.
func (s StatusResponse) Diagnostic() bool { return s.bit(6) }

func flag8(ch, dhw, cool, oc, ch2 bool) uint16 {
	var b uint16
	if ch {
		b |= 1 << 0
	}
	if dhw {
		b |= 1 << 1
	}
	if cool {
		b |= 1 << 2
	}
	if oc {
		b |= 1 << 3
	}
	if ch2 {
		b |= 1 << 4
	}
	return b << 8
}

// SetBoilerStatus sends the master status frame (MsgStatus, READ_DATA) with
// the given control-setpoint flags and returns the decoded boiler status.
func (c *Controller) SetBoilerStatus(ctx context.Context, ch, dhw, cool, oc, ch2 bool) (StatusResponse, error) {
	req := frame.Build(frame.ReadData, frame.MsgStatus, flag8(ch, dhw, cool, oc, ch2))
	resp, status, err := c.requestAndClassify(ctx, req)
	if err != nil || status != link.Success {
		return StatusResponse{}, err
	}
	return StatusResponse{raw: frame.GetUint(resp)}, nil
}

// SetBoilerTemp sends the CH water setpoint (MsgTSet, WRITE_DATA).
func (c *Controller) SetBoilerTemp(ctx context.Context, t float32) error {
	req := frame.Build(frame.WriteData, frame.MsgTSet, frame.TempToData(t))
	_, _, err := c.requestAndClassify(ctx, req)
	return err
}

// GetBoilerTemp reads the boiler flow-water temperature (MsgTBoiler).
func (c *Controller) GetBoilerTemp(ctx context.Context) (float32, error) {
	return c.requestFloat(ctx, frame.MsgTBoiler)
}

// GetReturnTemp reads the CH return-water temperature (MsgTRet).
func (c *Controller) GetReturnTemp(ctx context.Context) (float32, error) {
	return c.requestFloat(ctx, frame.MsgTRet)
}

// SetDHWSetpoint sends the domestic hot water setpoint (MsgTDHWSet,
// WRITE_DATA).
func (c *Controller) SetDHWSetpoint(ctx context.Context, t float32) error {
	req := frame.Build(frame.WriteData, frame.MsgTDHWSet, frame.TempToData(t))
	_, _, err := c.requestAndClassify(ctx, req)
	return err
}

// GetDHWTemp reads the domestic hot water temperature (MsgTDHW).
func (c *Controller) GetDHWTemp(ctx context.Context) (float32, error) {
	return c.requestFloat(ctx, frame.MsgTDHW)
}

// GetModulation reads the relative modulation level (MsgRelModLevel).
func (c *Controller) GetModulation(ctx context.Context) (float32, error) {
	return c.requestFloat(ctx, frame.MsgRelModLevel)
}

// GetPressure reads the CH water pressure (MsgCHPressure).
func (c *Controller) GetPressure(ctx context.Context) (float32, error) {
	return c.requestFloat(ctx, frame.MsgCHPressure)
}

// GetFault reads the application-specific fault flags (MsgASFFlags) and
// returns the high byte as the raw fault-flags field.
func (c *Controller) GetFault(ctx context.Context) (uint8, error) {
	req := frame.Build(frame.ReadData, frame.MsgASFFlags, 0)
	resp, status, err := c.requestAndClassify(ctx, req)
	if err != nil || status != link.Success {
		return 0, err
	}
	return uint8(frame.GetUint(resp) >> 8), nil
}

// GetSlaveVersion reads the raw slave product-version frame
// (MsgSlaveVersion).
func (c *Controller) GetSlaveVersion(ctx context.Context) (frame.Frame, error) {
	req := frame.Build(frame.ReadData, frame.MsgSlaveVersion, 0)
	resp, status, err := c.requestAndClassify(ctx, req)
	if err != nil || status != link.Success {
		return 0, err
	}
	return resp, nil
}

// GetSlaveOTVersion reads the slave's supported OpenTherm version
// (MsgOpenThermVersionSlave).
func (c *Controller) GetSlaveOTVersion(ctx context.Context) (float32, error) {
	return c.requestFloat(ctx, frame.MsgOpenThermVersionSlave)
}

// Reset sends the remote-request reset command (MsgRemoteRequest,
// WRITE_DATA, data=0x0100).
func (c *Controller) Reset(ctx context.Context) error {
	req := frame.Build(frame.WriteData, frame.MsgRemoteRequest, 0x0100)
	_, _, err := c.requestAndClassify(ctx, req)
	return err
}

// requestFloat issues a READ_DATA request for id and decodes the response
// as f8.8, returning 0.0 on any non-SUCCESS classification.
func (c *Controller) requestFloat(ctx context.Context, id frame.ID) (float32, error) {
	req := frame.Build(frame.ReadData, id, 0)
	resp, status, err := c.requestAndClassify(ctx, req)
	if err != nil || status != link.Success {
		return 0, err
	}
	return frame.GetFloat(resp), nil
}

// requestAndClassify submits req and returns the response alongside the
// controller's last-response-status classification, so callers can
// distinguish the zero-value cases from a genuine zero reading.
func (c *Controller) requestAndClassify(ctx context.Context, req frame.Frame) (frame.Frame, link.ResponseStatus, error) {
	resp, err := c.link.Request(ctx, req)
	if err != nil {
		return 0, link.None, err
	}
	return resp, c.link.LastResponseStatus(), nil
}
