package gsat

import "testing"

type cmdLineTest struct {
	kind  Kind
	param string
	out   string
	err   error
}

var cmdLineTests = []cmdLineTest{
	{Raw, "", "", nil},
	{Raw, "AT+NMAC=?", "AT+NMAC=?", nil},
	{OEM, "", "ATI0", nil},
	{Security, SecWPAPSK, "AT+WSEC=4", nil},
	{Associate, "my net", "AT+WA=my net", nil},
	{Disassociate, "1", "AT+WD", nil},
	{UDPServer, "", "AT+NSUDP=", nil},
	{Raw - 1, "", "", ErrRejected},
	{UDPServer + 1, "x", "", ErrRejected},
}

func TestCmdLine(t *testing.T) {
	var buf []byte
	for _, test := range cmdLineTests {
		out, err := cmdLine(test.kind, test.param)
		if err != test.err {
			t.Errorf("%v %q: errors don't match: %v != %v", test.kind, test.param, err, test.err)
			continue
		}
		if out != test.out {
			t.Errorf("%v %q -> %#v != %#v", test.kind, test.param, out, test.out)
		}
		buf = appendLine(buf[:0], out)
		if s := string(buf); s != test.out+"\r\n" {
			t.Errorf("%v %q -> %#v != %#v", test.kind, test.param, s, test.out+"\r\n")
		}
	}
}
