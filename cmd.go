package gsat

import "strconv"

// Kind identifies an AT command understood by the GainSpan module.
type Kind int

const (
	Raw          Kind = iota + 100 // param: raw command line sent verbatim
	OEM                            // ATI0, should answer "GainSpan"
	Hardware                       // ATI1, should answer "GS1011"
	Firmware                       // ATI2
	RxActive                       // param: Disable | Enable
	Security                       // param: SecAuto | SecOpen | SecWEP | SecWPAPSK | SecWPA2PSK
	Mode                           // param: Infrastructure | AdHoc | AccessPoint
	DHCPServer                     // param: Disable | Enable
	Associate                      // param: SSID
	Disassociate
	Passphrase                     // param: WPA passphrase
	UDPServer                      // param: local port
)

// Command parameters.
const (
	Disable = "0"
	Enable  = "1"

	SecAuto    = "0"
	SecOpen    = "1"
	SecWEP     = "2"
	SecWPAPSK  = "4"
	SecWPA2PSK = "8"

	Infrastructure = "0"
	AdHoc          = "1"
	AccessPoint    = "2"
)

// commands maps a command kind to its wire text. Templates ending with '='
// take the parameter.
var commands = [...]string{
	Raw - Raw:          "",
	OEM - Raw:          "ATI0",
	Hardware - Raw:     "ATI1",
	Firmware - Raw:     "ATI2",
	RxActive - Raw:     "AT+WRXACTIVE=",
	Security - Raw:     "AT+WSEC=",
	Mode - Raw:         "AT+WM=",
	DHCPServer - Raw:   "AT+DHCPSRVR=",
	Associate - Raw:    "AT+WA=",
	Disassociate - Raw: "AT+WD",
	Passphrase - Raw:   "AT+WWPA=",
	UDPServer - Raw:    "AT+NSUDP=",
}

// bootCommands are sent before the first user command, in reverse order of
// the remaining step count: step 3 is "AT", step 1 is "ATE0".
var bootCommands = [...]string{
	1: "ATE0", // disable echo
	2: "ATV1", // verbose (ASCII) result codes
	3: "AT",   // probe, only produces "OK"
}

const bootSteps = len(bootCommands) - 1

// Valid reports whether k has a wire mapping.
func (k Kind) Valid() bool {
	return k >= Raw && int(k-Raw) < len(commands)
}

func (k Kind) String() string {
	if !k.Valid() {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	if k == Raw {
		return "RAW"
	}
	return commands[k-Raw]
}

// cmdLine returns the wire text of the command k with the parameter param.
func cmdLine(k Kind, param string) (string, error) {
	if !k.Valid() {
		return "", ErrRejected
	}
	if k == Raw {
		return param, nil
	}
	s := commands[k-Raw]
	if s[len(s)-1] == '=' {
		s += param
	}
	return s, nil
}

// appendLine appends line terminated by CRLF to buf.
func appendLine(buf []byte, line string) []byte {
	buf = append(buf, line...)
	return append(buf, '\r', '\n')
}
