// Package imports classifies and normalizes Dart import URIs.
//
// # Overview
//
// A Dart library references other libraries through import directives:
//
//	import 'dart:async';                       // SDK, never part of the graph
//	import 'package:http/http.dart';           // third-party package
//	import 'package:my_app/src/model.dart';    // this project, resolved under lib/
//	import '../widgets/button.dart';           // relative to the importing file
//
// [Resolver] maps each URI to a canonical path: project-root relative,
// forward-slash separated and always under the library root ("lib").
// Anything else (SDK imports, foreign packages, paths escaping the project
// root, project files outside lib such as tests or tooling) is rejected by
// returning false. Resolution never fails with an error.
//
// # Extraction
//
// [Extract] finds import URIs with a line-anchored regular expression. It is
// not a Dart parser: multi-line or unusually formatted directives are
// missed, and export/part directives are ignored.
package imports
