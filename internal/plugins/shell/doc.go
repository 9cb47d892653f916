// Package shell exposes command execution to the webview.
//
// Three modes are supported: one-shot execution with captured output and
// exit code, handing files or URLs to the desktop's default opener, and
// long-lived interactive sessions backed by a PTY with a circular output
// buffer. One-shot commands run with their working directory confined to
// the data directory and are cancelled on timeout.
package shell
