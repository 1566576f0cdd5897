// Package java locates a local Java runtime of a required major version and
// runs jars with it. The search checks JAVA_HOME first, then every PATH
// directory, and validates each candidate by running it with -version.
package java
