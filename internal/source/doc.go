// Package source fetches the raw bytes of a settings store.
//
// The stores under /data/system are only readable by root, so every
// implementation other than Dir needs some privileged path to the device:
//
//   - Files reads the on-device path directly (run as root on the device,
//     or point Root at a mounted image).
//   - Dir reads settings_<kind>.xml from a directory of pulled snapshots.
//   - Shell runs "su -c cat <path>" on the device itself.
//   - ADB runs "adb exec-out su -c cat <path>" against an attached device.
//     exec-out drops the remote exit status, so a marker printed after a
//     successful cat tells store content apart from su or cat errors.
//
// Callers receive raw bytes; ReadText turns them into the text settings.Parse
// expects, decoding Android Binary XML when it is detected.
package source
