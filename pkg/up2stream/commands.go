package up2stream

// Command names understood by the firmware.
const (
	CmdVersion       = "VER"
	CmdStatus        = "STA"
	CmdSystemControl = "SYS"
	CmdInternet      = "WWW"
	CmdAudioOut      = "AUD"
	CmdSource        = "SRC"
	CmdVolume        = "VOL"
	CmdMute          = "MUT"
	CmdBass          = "BAS"
	CmdTreble        = "TRE"
	CmdPlayPause     = "POP"
	CmdStop          = "STP"
	CmdNext          = "NXT"
	CmdPrevious      = "PRE"
	CmdBluetooth     = "BTC"
	CmdPlayback      = "PLA"
	CmdChannel       = "CHN"
	CmdMultiroom     = "MRM"
	CmdLED           = "LED"
	CmdBeep          = "BEP"
	CmdPreset        = "PST"
	CmdVirtualBass   = "VBS"
	CmdWiFiReset     = "WRS"
	CmdLoopMode      = "LPM"
	CmdName          = "NAM"
	CmdEthernet      = "ETH"
	CmdWiFi          = "WIF"
)
