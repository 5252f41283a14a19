// Package action defines the application actions an input binding can
// trigger.
//
// Actions form an open set. Parameterless actions are Simple values; actions
// that carry data (SendChars, ChangeProfile, ...) are small structs. Every
// action knows its configuration name and its parameters, which is all the
// configuration layer needs to load and render it. New action kinds are
// added with Register.
//
// # Usage
//
//	a, err := action.New("SendChars", map[string]string{"chars": "\x1b[2J"})
//	if err != nil {
//	    // unknown action or bad parameter
//	}
//	fmt.Println(a.Name()) // SendChars
package action
