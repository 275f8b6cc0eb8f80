package main

import (
	"fmt"

	"github.com/bcdannyboy/mcengine/instruments"
	"github.com/bcdannyboy/mcengine/models"
)

// Request is the JSON pricing request read from stdin or a file, one
// call per invocation. Model-specific parameter blocks are optional and
// only required by the model named in Model.
type Request struct {
	Instrument string `json:"instrument"`
	Model      string `json:"model"`
	OptionType string `json:"option_type"`

	S0    float64 `json:"s0"`
	K     float64 `json:"k"`
	R     float64 `json:"r"`
	Sigma float64 `json:"sigma"`
	T     float64 `json:"t"`

	Paths      int    `json:"paths"`
	Steps      int    `json:"steps"`
	Threads    int    `json:"threads"`
	Seed       uint64 `json:"seed"`
	Antithetic bool   `json:"antithetic"`

	Heston  *HestonInput  `json:"heston,omitempty"`
	SABR    *SABRInput    `json:"sabr,omitempty"`
	Merton  *MertonInput  `json:"merton,omitempty"`
	Barrier *BarrierInput `json:"barrier,omitempty"`
	Asian   *AsianInput   `json:"asian,omitempty"`
}

// HestonInput carries the Heston stochastic-volatility parameters and
// discretization scheme selector.
type HestonInput struct {
	V0     float64 `json:"v0"`
	Kappa  float64 `json:"kappa"`
	Theta  float64 `json:"theta"`
	Xi     float64 `json:"xi"`
	Rho    float64 `json:"rho"`
	Scheme string  `json:"scheme"` // "euler" or "qe"
}

// SABRInput carries the SABR stochastic-volatility parameters.
type SABRInput struct {
	Alpha0 float64 `json:"alpha0"`
	Beta   float64 `json:"beta"`
	Nu     float64 `json:"nu"`
	Rho    float64 `json:"rho"`
}

// MertonInput carries the Merton jump-diffusion parameters.
type MertonInput struct {
	Lambda float64 `json:"lambda"`
	MuJ    float64 `json:"mu_j"`
	SigmaJ float64 `json:"sigma_j"`
}

// BarrierInput carries the barrier level, direction, and rebate for a
// barrier instrument request.
type BarrierInput struct {
	H         float64 `json:"h"`
	Rebate    float64 `json:"rebate"`
	Direction string  `json:"direction"` // "down_in","down_out","up_in","up_out"
}

// AsianInput carries the Asian-specific averaging configuration.
type AsianInput struct {
	Observations int  `json:"observations"`
	Geometric    bool `json:"geometric"`
	Floating     bool `json:"floating"`
}

func (r Request) optionType() instruments.OptionType {
	if r.OptionType == "put" {
		return instruments.Put
	}
	return instruments.Call
}

func (r Request) hestonScheme() models.HestonScheme {
	if r.Heston != nil && r.Heston.Scheme == "qe" {
		return models.SchemeQuadraticExponential
	}
	return models.SchemeFullTruncationEuler
}

func (r Request) barrierDirection() (instruments.BarrierDirection, error) {
	if r.Barrier == nil {
		return 0, fmt.Errorf("mcprice: barrier instrument requires a \"barrier\" block")
	}
	switch r.Barrier.Direction {
	case "down_in":
		return instruments.DownIn, nil
	case "down_out":
		return instruments.DownOut, nil
	case "up_in":
		return instruments.UpIn, nil
	case "up_out":
		return instruments.UpOut, nil
	default:
		return 0, fmt.Errorf("mcprice: unknown barrier direction %q", r.Barrier.Direction)
	}
}
