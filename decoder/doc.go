/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package decoder turns the untyped argument list of an exception report
// into a redbox.ErrorInfo.
//
// The expected shape is a three element array:
//
//	[message string, callstack array, id number]
//
// where every callstack entry is an object with "file", "methodName",
// "lineNumber" and "column" keys (producers may add more, e.g. "arguments";
// extra keys are ignored).
//
// All checks are always active. A payload that does not conform yields a
// *redbox.Error naming the failing element by path ("args[1][0].column")
// and a zero ErrorInfo; nothing is partially decoded.
//
// Missing positions: a "lineNumber" or "column" that is null or absent
// decodes to redbox.UnknownPosition. Absent keys are tolerated on purpose,
// because older producers omit them; WithStrictFrames turns absence into an
// error. A "file" or "methodName" that is null or absent decodes to "".
package decoder
