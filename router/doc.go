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

// Package router is the ExceptionsManager module: it receives exception
// reports by method name, decodes them and forwards each one to exactly one
// method of a redbox.Handler.
//
//	reportFatalException(args)   -> Handler.ShowNewError(info, redbox.Fatal)
//	reportSoftException(args)    -> Handler.ShowNewError(info, redbox.Soft)
//	updateExceptionMessage(args) -> Handler.UpdateError(info)
//	dismissRedbox()              -> Handler.DismissRedbox()
//
// The three report methods act only when a handler is present and reports
// developer support as enabled; otherwise they return nil without decoding.
// dismissRedbox needs a handler but ignores the enablement flag.
//
// A Router is immutable after New and safe for concurrent use; the handler
// is responsible for its own synchronization.
package router
