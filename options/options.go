package options

// HostOptions holds the command line settings of the demo host.
type HostOptions struct {
	PagePath     *string
	ConfigPath   *string
	Width        *int
	Height       *int
	FFMPEGPath   *string
	Verbose      *bool
	Help         *bool
	Mobile       *bool // treat the viewport as a touch device for resize heuristics
	KeepHidden   *bool // leave source elements hidden after exit
	SwapInterval *int
	OutputFile   *string // record presented frames here when set
	Codec        *string
	FPS          *int
}
